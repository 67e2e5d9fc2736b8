package client

import (
	"errors"
	"fmt"
	"io"
)

// Attachment is one media file queued for upload. Open is called exactly
// once, at upload time, so large files are never buffered while collecting.
type Attachment struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Collector is the Collecting state of one submission attempt: images and
// videos accumulate independently, append-only except for remove-at-index.
// Each image carries a preview resource that the collector owns and must
// release when the image is removed and on Close.
type Collector struct {
	images   []Attachment
	previews []io.Closer
	videos   []Attachment
}

func NewCollector() *Collector {
	return &Collector{}
}

// AddImage queues an image and takes ownership of its preview resource.
// A nil preview is allowed.
func (c *Collector) AddImage(a Attachment, preview io.Closer) {
	c.images = append(c.images, a)
	c.previews = append(c.previews, preview)
}

func (c *Collector) AddVideo(a Attachment) {
	c.videos = append(c.videos, a)
}

// RemoveImage releases the preview at index i and re-indexes the remainder,
// leaving no gap and preserving the order of what's left.
func (c *Collector) RemoveImage(i int) error {
	if i < 0 || i >= len(c.images) {
		return fmt.Errorf("client: image index %d out of range", i)
	}

	var err error
	if p := c.previews[i]; p != nil {
		err = p.Close()
	}

	c.images = append(c.images[:i], c.images[i+1:]...)
	c.previews = append(c.previews[:i], c.previews[i+1:]...)
	return err
}

func (c *Collector) RemoveVideo(i int) error {
	if i < 0 || i >= len(c.videos) {
		return fmt.Errorf("client: video index %d out of range", i)
	}
	c.videos = append(c.videos[:i], c.videos[i+1:]...)
	return nil
}

func (c *Collector) Images() []Attachment { return c.images }
func (c *Collector) Videos() []Attachment { return c.videos }

// Files returns the upload order for one submission: all images, then all
// videos. Upload order determines the final media_urls ordering.
func (c *Collector) Files() []Attachment {
	files := make([]Attachment, 0, len(c.images)+len(c.videos))
	files = append(files, c.images...)
	files = append(files, c.videos...)
	return files
}

// Close releases every remaining preview resource. Safe to call more than
// once; selections are cleared.
func (c *Collector) Close() error {
	var errs []error
	for _, p := range c.previews {
		if p != nil {
			if err := p.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	c.images = nil
	c.previews = nil
	c.videos = nil
	return errors.Join(errs...)
}
