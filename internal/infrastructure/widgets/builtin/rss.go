package builtin

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AtRiskMedia/monster-widget/internal/domain/entities/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	maxFeedItems   = 20
	summaryLength  = 360
	feedFetchLimit = 2 << 20
)

// Feed is a parsed RSS channel.
type Feed struct {
	Title string
	Link  string
	Items []FeedItem
}

type FeedItem struct {
	Title     string
	Link      string
	Author    string
	Published time.Time
	Summary   string
}

// FeedFetcher retrieves and parses a feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*Feed, error)
}

// HTTPFeedFetcher fetches RSS, Atom and JSON feeds over HTTP and caches parsed
// results.
type HTTPFeedFetcher struct {
	client *http.Client
	cache  *caching.Store[*Feed]
	locks  *caching.KeyLock
}

func NewHTTPFeedFetcher(timeout, ttl time.Duration) *HTTPFeedFetcher {
	return &HTTPFeedFetcher{
		client: &http.Client{Timeout: timeout},
		cache:  caching.NewStore[*Feed](ttl),
		locks:  caching.NewKeyLock(),
	}
}

// Cache exposes the parsed-feed cache for the cleanup worker.
func (f *HTTPFeedFetcher) Cache() *caching.Store[*Feed] {
	return f.cache
}

func (f *HTTPFeedFetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	if feed, ok := f.cache.Get(url); ok {
		return feed, nil
	}

	unlock := f.locks.Lock(url)
	defer unlock()
	if feed, ok := f.cache.Get(url); ok {
		return feed, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", url, resp.StatusCode)
	}

	feed, err := ParseFeed(io.LimitReader(resp.Body, feedFetchLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	f.cache.Set(url, feed)
	return feed, nil
}

// ParseFeed decodes an RSS, Atom or JSON feed document.
func ParseFeed(r io.Reader) (*Feed, error) {
	parsed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, err
	}

	feed := &Feed{Title: strings.TrimSpace(parsed.Title), Link: strings.TrimSpace(parsed.Link)}
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		var author string
		for _, person := range item.Authors {
			if person != nil && strings.TrimSpace(person.Name) != "" {
				author = strings.TrimSpace(person.Name)
				break
			}
		}
		var published time.Time
		switch {
		case item.PublishedParsed != nil:
			published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			published = *item.UpdatedParsed
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		feed.Items = append(feed.Items, FeedItem{
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
			Author:    author,
			Published: published,
			Summary:   summary,
		})
	}
	return feed, nil
}

// RSS renders entries from an external feed.
type RSS struct {
	base
	feeds    FeedFetcher
	logger   *logging.ChanneledLogger
	sanitize *bluemonday.Policy
}

func NewRSS(feeds FeedFetcher, logger *logging.ChanneledLogger) *RSS {
	return &RSS{
		base: base{opts: widgets.Options{
			ID:          widgets.TypeRSS,
			Name:        "RSS",
			ClassName:   "widget_rss",
			Description: "Entries from any RSS or Atom feed.",
		}},
		feeds:    feeds,
		logger:   logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

func (r *RSS) Render(ctx context.Context, w io.Writer, args widgets.DisplayArgs, s widgets.Settings) error {
	url := strings.TrimSpace(s.String("url", ""))
	if url == "" {
		return nil
	}

	items := s.Int("items", 10)
	if items < 1 || items > maxFeedItems {
		items = 10
	}

	var feed *Feed
	var err error
	if r.feeds == nil {
		err = fmt.Errorf("no feed fetcher configured")
	} else {
		feed, err = r.feeds.Fetch(ctx, url)
	}

	heading := title(s, "")
	if err != nil {
		r.logger.Widgets().Warn("RSS feed unavailable", "url", url, "error", err)
		if heading == "" {
			heading = "Unknown Feed"
		}
		body := `<ul><li><strong>RSS Error:</strong> An error has occurred, which probably means the feed is down. Try again later.</li></ul>`
		return writeWidget(w, args, r.feedTitle(url, "", heading), body)
	}

	if heading == "" {
		heading = esc(feed.Title)
	}
	if heading == "" {
		heading = "Untitled"
	}

	var b strings.Builder
	b.WriteString(`<ul>`)
	for i, item := range feed.Items {
		if i >= items {
			break
		}
		itemTitle := item.Title
		if itemTitle == "" {
			itemTitle = "Untitled"
		}
		fmt.Fprintf(&b, `<li><a class="rsswidget" href="%s">%s</a>`, esc(item.Link), esc(itemTitle))
		if s.Bool("show_date") && !item.Published.IsZero() {
			fmt.Fprintf(&b, ` <span class="rss-date">%s</span>`, item.Published.Format("January 2, 2006"))
		}
		if s.Bool("show_summary") {
			if summary := r.summary(item.Summary); summary != "" {
				fmt.Fprintf(&b, `<div class="rssSummary">%s</div>`, summary)
			}
		}
		if s.Bool("show_author") && item.Author != "" {
			fmt.Fprintf(&b, ` <cite>%s</cite>`, esc(item.Author))
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)

	return writeWidget(w, args, r.feedTitle(url, feed.Link, heading), b.String())
}

func (r *RSS) feedTitle(url, link, heading string) string {
	out := fmt.Sprintf(`<a class="rsswidget rss-widget-feed" href="%s">RSS</a>`, esc(url))
	if link != "" {
		return out + fmt.Sprintf(` <a class="rsswidget rss-widget-title" href="%s">%s</a>`, esc(link), heading)
	}
	return out + " " + heading
}

// summary strips markup, trims to summaryLength runes of plain text and
// escapes the result.
func (r *RSS) summary(raw string) string {
	text := html.UnescapeString(r.sanitize.Sanitize(raw))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= summaryLength {
		return esc(text)
	}
	runes := []rune(text)
	return esc(strings.TrimSpace(string(runes[:summaryLength]))) + " [&hellip;]"
}
