// Terminal triage console: logs an officer in, prints the report feed with
// optional status filtering, and can apply a status transition. Handy when
// the web dashboard is unavailable.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"

	"github.com/CivicIntel/CI-Backend/internal/dashboard"
	"github.com/CivicIntel/CI-Backend/internal/reports"
)

func main() {
	var (
		portalURL  = flag.String("portal", "http://localhost:5050", "portal API base URL")
		publicBase = flag.String("public-url", os.Getenv("STORAGE_PUBLIC_URL"), "public bucket domain for evidence links")
		username   = flag.String("user", "", "officer username")
		password   = flag.String("pass", "", "officer password")
		filter     = flag.String("filter", dashboard.FilterAll, "all, pending, investigating or closed")
		setID      = flag.String("set", "", "report id to transition")
		setStatus  = flag.String("to", "", "target status for -set")
	)
	flag.Parse()

	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	httpClient := &http.Client{Jar: jar}

	if err := login(httpClient, *portalURL, *username, *password); err != nil {
		log.Fatal("Login failed: ", err)
	}

	client := &dashboard.Client{BaseURL: *portalURL, HTTPClient: httpClient}
	ctx := context.Background()

	feed, err := client.FetchReports(ctx)
	if err != nil {
		log.Fatal("Fetch failed: ", err)
	}
	board := dashboard.NewBoard(feed, client)

	if *setID != "" {
		status := reports.Status(*setStatus)
		if !status.Valid() {
			log.Fatalf("Invalid status %q", *setStatus)
		}
		if err := <-board.SetStatus(ctx, *setID, status); err != nil {
			log.Fatal("Status update failed: ", err)
		}
		fmt.Printf("Report %s -> %s\n", *setID, status.Label())
	}

	stats := board.Stats()
	fmt.Printf("%d reports | %d pending, %d investigating, %d closed\n\n",
		stats.Total, stats.Pending, stats.Investigating, stats.Closed)

	for _, r := range board.Filter(*filter) {
		fmt.Printf("%s  [%s]  %s / %s  @ %s\n",
			r.ID[:8], r.Status.Label(),
			reports.DisplayLabel(r.ReportType), reports.DisplayLabel(r.Category),
			r.Location)
		fmt.Printf("    %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
		for _, key := range r.MediaURLs {
			kind := "image"
			if dashboard.ClassifyMedia(key) == dashboard.KindVideo {
				kind = "video"
			}
			fmt.Printf("    %s: %s\n", kind, dashboard.MediaURL(*publicBase, key))
		}
	}
}

func login(client *http.Client, portalURL, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("both -user and -pass are required")
	}

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	resp, err := client.Post(strings.TrimRight(portalURL, "/")+"/auth/login",
		"application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", resp.Status)
	}
	return nil
}
