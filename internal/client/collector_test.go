package client

import (
	"io"
	"strings"
	"testing"
)

// trackedPreview counts Close calls so tests can assert release discipline.
type trackedPreview struct {
	closed int
}

func (p *trackedPreview) Close() error {
	p.closed++
	return nil
}

func attachment(name string) Attachment {
	return Attachment{
		Filename:    name,
		ContentType: "image/jpeg",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("bytes of " + name)), nil
		},
	}
}

func TestCollector_RemoveImageReleasesPreviewAndReindexes(t *testing.T) {
	c := NewCollector()
	previews := []*trackedPreview{{}, {}, {}}
	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		c.AddImage(attachment(name), previews[i])
	}

	if err := c.RemoveImage(1); err != nil {
		t.Fatalf("RemoveImage: %v", err)
	}

	if previews[1].closed != 1 {
		t.Errorf("removed preview closed %d times, want 1", previews[1].closed)
	}
	if previews[0].closed != 0 || previews[2].closed != 0 {
		t.Error("other previews must stay open")
	}

	imgs := c.Images()
	if len(imgs) != 2 || imgs[0].Filename != "a.jpg" || imgs[1].Filename != "c.jpg" {
		t.Errorf("remainder misordered or gapped: %v", filenames(imgs))
	}
}

func TestCollector_RemoveOutOfRange(t *testing.T) {
	c := NewCollector()
	c.AddImage(attachment("a.jpg"), &trackedPreview{})

	if err := c.RemoveImage(1); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := c.RemoveImage(-1); err == nil {
		t.Error("expected error for negative index")
	}
	if err := c.RemoveVideo(0); err == nil {
		t.Error("expected error removing from empty video list")
	}
}

func TestCollector_CloseReleasesEverything(t *testing.T) {
	c := NewCollector()
	previews := []*trackedPreview{{}, {}}
	c.AddImage(attachment("a.jpg"), previews[0])
	c.AddImage(attachment("b.jpg"), previews[1])
	c.AddVideo(attachment("clip.mp4"))

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for i, p := range previews {
		if p.closed != 1 {
			t.Errorf("preview %d closed %d times, want 1", i, p.closed)
		}
	}

	// Close again: must be a no-op, no double release.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	for i, p := range previews {
		if p.closed != 1 {
			t.Errorf("preview %d double-released (%d closes)", i, p.closed)
		}
	}
}

func TestCollector_FilesOrderImagesThenVideos(t *testing.T) {
	c := NewCollector()
	c.AddVideo(attachment("clip.mp4"))
	c.AddImage(attachment("a.jpg"), nil)
	c.AddImage(attachment("b.jpg"), nil)

	got := filenames(c.Files())
	want := []string{"a.jpg", "b.jpg", "clip.mp4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("upload order = %v, want %v", got, want)
		}
	}
}

func filenames(atts []Attachment) []string {
	out := make([]string, len(atts))
	for i, a := range atts {
		out[i] = a.Filename
	}
	return out
}
