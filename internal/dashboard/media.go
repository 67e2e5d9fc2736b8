package dashboard

import (
	"path"
	"strings"
)

// MediaKind classifies an evidence item for rendering.
type MediaKind int

const (
	KindImage MediaKind = iota
	KindVideo
)

// videoExtensions mirrors what the detail view can play inline; everything
// else renders as an image.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".webm": {},
}

// ClassifyMedia decides video vs. image purely from the key's extension.
func ClassifyMedia(key string) MediaKind {
	ext := strings.ToLower(path.Ext(key))
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindImage
}

// MediaURL derives the public read URL for a stored object key. Keys are
// stored bare; the public bucket domain is deployment configuration.
func MediaURL(publicBase, key string) string {
	return strings.TrimRight(publicBase, "/") + "/" + key
}
