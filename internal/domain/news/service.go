package news

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"
)

// Finance keywords that make an item relevant
var allowKeywords = []string{
	"bolsa", "ações", "ibovespa", "investimento", "fundos", "fii", "dividendo",
	"mercado", "cotação", "dólar", "juros", "selic", "cdb", "tesouro",
	"vale", "petrobras", "itaú", "banco", "bradesco", "ambev", "magazine luiza",
	"b3", "bovespa", "ipo", "oferta", "ação", "título", "renda fixa",
	"carteira", "portfólio", "analista", "recomendação", "balanço", "lucro",
	"resultado", "receita", "copom", "bacen", "cvm", "economia",
}

// Keywords that disqualify an item regardless of the allowlist
var blockKeywords = []string{
	"futebol", "esporte", "novela", "celebridade", "entretenimento",
	"crime", "acidente", "tempo", "previsão", "horóscopo",
}

// Fetcher retrieves raw items from one RSS feed
// Implemented by the rss client in the infrastructure layer
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// Service aggregates configured finance feeds into a curated, paginated list
type Service struct {
	fetcher Fetcher
	feeds   []Feed

	// now is swapped in tests to pin "today"
	now func() time.Time
}

// NewService creates a new news service
func NewService(fetcher Fetcher, feeds []Feed) *Service {
	return &Service{fetcher: fetcher, feeds: feeds, now: time.Now}
}

// GetNews fetches every configured feed, keeps today's finance items, dedupes
// by title and paginates in memory. A failing feed is logged and omitted.
func (s *Service) GetNews(ctx context.Context, page, limit int) *Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	now := s.now()

	all := []Item{}
	for _, feed := range s.feeds {
		items, err := s.fetcher.Fetch(ctx, feed.URL)
		if err != nil {
			log.Printf("failed to fetch feed %s: %v", feed.Source, err)
			continue
		}

		for _, item := range items {
			if !sameDay(item.Published, now) {
				continue
			}
			if !isRelevant(item.Title, item.Description) {
				continue
			}
			all = append(all, Item{
				Title:   item.Title,
				Link:    item.Link,
				PubDate: item.Published,
				Source:  feed.Source,
			})
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].PubDate.After(all[j].PubDate) })

	// Dedupe by title, first occurrence wins
	seen := make(map[string]struct{}, len(all))
	unique := all[:0]
	for _, item := range all {
		if _, dup := seen[item.Title]; dup {
			continue
		}
		seen[item.Title] = struct{}{}
		unique = append(unique, item)
	}

	return paginate(unique, page, limit, now)
}

// sameDay compares calendar dates in the server's timezone.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// isRelevant applies the blocklist first, then requires at least one finance
// keyword in the title or description.
func isRelevant(title, description string) bool {
	text := strings.ToLower(title) + " " + strings.ToLower(description)

	for _, kw := range blockKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	for _, kw := range allowKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func paginate(items []Item, page, limit int, lastUpdate time.Time) *Page {
	totalItems := len(items)
	totalPages := (totalItems + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalItems {
		start = totalItems
	}
	end := start + limit
	if end > totalItems {
		end = totalItems
	}

	return &Page{
		News: items[start:end],
		Pagination: Pagination{
			CurrentPage:     page,
			TotalPages:      totalPages,
			TotalItems:      totalItems,
			ItemsPerPage:    limit,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
		LastUpdate: lastUpdate,
	}
}
