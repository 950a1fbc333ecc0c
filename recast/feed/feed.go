package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Episode is the metadata the dialog pipelines need from an RSS feed.
type Episode struct {
	Podcast     string
	Title       string
	Description string
}

// Lookup fetches an RSS feed and returns the episode at index. Index 0 is
// the feed's first item, which most podcast feeds publish newest-first.
func Lookup(ctx context.Context, url string, index int) (Episode, error) {
	if index < 0 {
		return Episode{}, fmt.Errorf("feed: episode index must be >= 0, got %d", index)
	}

	parser := gofeed.NewParser()
	f, err := parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return Episode{}, fmt.Errorf("feed: parse %s: %w", url, err)
	}
	if len(f.Items) == 0 {
		return Episode{}, fmt.Errorf("feed: %s has no episodes", url)
	}
	if index >= len(f.Items) {
		return Episode{}, fmt.Errorf("feed: episode index %d out of range (%d episodes)", index, len(f.Items))
	}

	item := f.Items[index]
	return Episode{
		Podcast:     strings.TrimSpace(f.Title),
		Title:       strings.TrimSpace(item.Title),
		Description: stripMarkup(item.Description),
	}, nil
}

// stripMarkup reduces an HTML episode description to plain text. Feeds that
// already carry plain text pass through unchanged.
func stripMarkup(description string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return strings.TrimSpace(description)
	}
	return strings.TrimSpace(doc.Text())
}
