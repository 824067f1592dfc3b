package news

import "time"

// Item is one curated news entry
type Item struct {
	Title   string    `json:"title"`
	Link    string    `json:"link"`
	PubDate time.Time `json:"pubDate"`
	Source  string    `json:"source"`
}

// Pagination describes the in-memory page window over the curated list
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Page is the paginated news payload
type Page struct {
	News       []Item     `json:"news"`
	Pagination Pagination `json:"pagination"`
	LastUpdate time.Time  `json:"lastUpdate"`
}

// FeedItem is a raw entry fetched from one RSS feed
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Published   time.Time
}

// Feed is one configured RSS source
type Feed struct {
	URL    string
	Source string
}
