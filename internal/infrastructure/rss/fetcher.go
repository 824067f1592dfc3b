package rss

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"carteira/internal/domain/news"
)

const defaultTimeout = 15 * time.Second

// Fetcher retrieves and parses RSS 2.0 feeds
type Fetcher struct {
	httpClient *http.Client
}

var _ news.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a new RSS fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetch downloads one feed and returns its items. Items whose publication
// date cannot be parsed are skipped; the aggregation filters by date and
// cannot place them.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]news.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/rss+xml, application/xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed with status %d", resp.StatusCode)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]news.FeedItem, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		published, err := parsePubDate(item.PubDate)
		if err != nil {
			continue
		}
		items = append(items, news.FeedItem{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			Published:   published,
		})
	}

	return items, nil
}

// parsePubDate handles the date formats seen across Brazilian finance feeds
func parsePubDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
