package storage

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// TestUniqueKey_Pattern verifies the documented key shape for a filename
// containing a space: "<integer-ms>-evidence-photo.jpg".
func TestUniqueKey_Pattern(t *testing.T) {
	key := UniqueKey("evidence photo.jpg")

	re := regexp.MustCompile(`^\d+-evidence-photo\.jpg$`)
	if !re.MatchString(key) {
		t.Errorf("key %q does not match <integer-timestamp>-evidence-photo.jpg", key)
	}
}

// TestUniqueKey_WhitespaceReplaced checks every whitespace character is
// dashed, not just plain spaces.
func TestUniqueKey_WhitespaceReplaced(t *testing.T) {
	key := UniqueKey("a b\tc\nd.jpg")

	idx := strings.Index(key, "-")
	if idx < 0 {
		t.Fatalf("key %q has no timestamp separator", key)
	}
	rest := key[idx+1:]
	if rest != "a-b-c-d.jpg" {
		t.Errorf("got filename part %q, want %q", rest, "a-b-c-d.jpg")
	}
}

// TestUniqueKey_BackToBackUnique submits the same filename repeatedly and
// requires every key to be distinct, even within one millisecond.
func TestUniqueKey_BackToBackUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		key := UniqueKey("evidence.jpg")
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key issued: %q", key)
		}
		seen[key] = struct{}{}
	}
}

// TestUniqueKey_MonotonicUnderConcurrency hammers the generator from many
// goroutines; all timestamps must be unique (strictly increasing overall).
func TestUniqueKey_MonotonicUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	stamps := make(map[int64]struct{})

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := UniqueKey("f.jpg")
				ts, err := strconv.ParseInt(key[:strings.Index(key, "-")], 10, 64)
				if err != nil {
					t.Errorf("bad timestamp prefix in %q: %v", key, err)
					return
				}
				mu.Lock()
				if _, dup := stamps[ts]; dup {
					t.Errorf("timestamp %d issued twice", ts)
				}
				stamps[ts] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
