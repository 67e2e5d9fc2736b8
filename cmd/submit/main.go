// Submits one report to a running portal from the command line, including
// the full evidence upload handshake. Useful for smoke-testing deployments.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/CivicIntel/CI-Backend/internal/client"
	"github.com/CivicIntel/CI-Backend/internal/config"
)

type fileList []string

func (f *fileList) String() string { return fmt.Sprint(*f) }
func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var (
		portalURL = flag.String("portal", "http://localhost:5050", "portal API base URL")
		repType   = flag.String("type", "tip", "report type: tip or report")
		category  = flag.String("category", "", "category (robbery, drugs, scam, assault, corruption, traffic, other)")
		location  = flag.String("location", "", "where it happened")
		details   = flag.String("details", "", "what happened")
		images    fileList
		videos    fileList
	)
	flag.Var(&images, "image", "image file to attach (repeatable)")
	flag.Var(&videos, "video", "video file to attach (repeatable)")
	flag.Parse()

	collector := client.NewCollector()
	defer collector.Close()

	for _, p := range images {
		att, handle, err := attachmentFromPath(p)
		if err != nil {
			log.Fatal(err)
		}
		collector.AddImage(att, handle)
	}
	for _, p := range videos {
		att, _, err := attachmentFromPath(p)
		if err != nil {
			log.Fatal(err)
		}
		collector.AddVideo(att)
	}

	c := &client.Client{BaseURL: *portalURL}
	form := client.Form{
		Type:     *repType,
		Category: *category,
		Location: *location,
		Details:  *details,
	}

	if err := c.Submit(context.Background(), form, collector.Files()); err != nil {
		log.Fatal("Submission failed: ", err)
	}

	portal, _ := config.Load("portal.yaml")
	fmt.Println("Submission received.")
	fmt.Printf("Your information has been securely sent to %s. Thank you for helping keep %s safe.\n",
		portal.AgencyName, portal.CountryName)
	if portal.FacebookLink != "#" || portal.TwitterLink != "#" {
		fmt.Printf("Follow updates on verified operations: %s %s\n", portal.FacebookLink, portal.TwitterLink)
	}
}

// attachmentFromPath builds an Attachment that opens the file at upload
// time, plus a handle the collector owns for images.
func attachmentFromPath(p string) (client.Attachment, io.Closer, error) {
	if _, err := os.Stat(p); err != nil {
		return client.Attachment{}, nil, fmt.Errorf("cannot read %s: %w", p, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	att := client.Attachment{
		Filename:    filepath.Base(p),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(p)
		},
	}
	return att, nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
