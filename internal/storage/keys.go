package storage

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
)

var (
	keyMu     sync.Mutex
	lastStamp int64
)

// UniqueKey derives the object key for an uploaded file: a millisecond
// timestamp prefix followed by the filename with every whitespace character
// replaced by a dash, e.g. "1738291-evidence-photo.jpg". The timestamp is
// strictly monotonic within the process, so two back-to-back calls with the
// same filename never collide. Stored keys stay URL-safe because the public
// evidence URL is built by plain concatenation at read time.
func UniqueKey(filename string) string {
	keyMu.Lock()
	now := time.Now().UnixMilli()
	if now <= lastStamp {
		now = lastStamp + 1
	}
	lastStamp = now
	keyMu.Unlock()

	return strconv.FormatInt(now, 10) + "-" + dashWhitespace(filename)
}

func dashWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, s)
}
