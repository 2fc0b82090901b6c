package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "DroneWatchBot/1.0 (+https://dronewatch.eu/bot)"

	// maxItemAge drops stale feed items; anything older than this is either
	// already processed or no longer actionable.
	maxItemAge = 14 * 24 * time.Hour
)

// RSSCollector fetches one RSS/Atom feed. It applies the source's keyword
// prefilter when the descriptor carries keywords, which keeps high-volume
// general feeds from flooding the validator.
type RSSCollector struct {
	source registry.SourceDescriptor
	client *http.Client
	parser *gofeed.Parser
	logger *zap.Logger
}

// NewRSSCollector builds a collector for one feed source. Transient HTTP
// failures retry with backoff; the per-request timeout stays at fetchTimeout
// so one slow publisher cannot eat the cycle budget.
func NewRSSCollector(source registry.SourceDescriptor, logger *zap.Logger) *RSSCollector {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = fetchTimeout
	rc.Logger = nil

	return &RSSCollector{
		source: source,
		client: rc.StandardClient(),
		parser: gofeed.NewParser(),
		logger: logger,
	}
}

// Source returns the descriptor this collector serves.
func (c *RSSCollector) Source() registry.SourceDescriptor {
	return c.source
}

// Collect fetches the feed and maps fresh items to raw reports.
func (c *RSSCollector) Collect(ctx context.Context) ([]model.RawReport, Stats, error) {
	start := time.Now()
	stats := Stats{SourceKey: c.source.Key}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source.FeedURL, nil)
	if err != nil {
		stats.Errors++
		stats.Duration = time.Since(start)
		return nil, stats, fmt.Errorf("build request for %s: %w", c.source.Key, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		stats.Errors++
		stats.Duration = time.Since(start)
		return nil, stats, fmt.Errorf("fetch %s: %w", c.source.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		stats.Errors++
		stats.Duration = time.Since(start)
		return nil, stats, fmt.Errorf("fetch %s: status %d", c.source.Key, resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		stats.Errors++
		stats.Duration = time.Since(start)
		return nil, stats, fmt.Errorf("parse %s: %w", c.source.Key, err)
	}

	cutoff := time.Now().Add(-maxItemAge)
	var reports []model.RawReport
	for _, item := range feed.Items {
		report, ok := c.toReport(item, cutoff)
		if !ok {
			continue
		}
		reports = append(reports, report)
	}

	stats.Found = len(reports)
	stats.Duration = time.Since(start)
	c.logger.Debug("feed collected",
		zap.String("source", c.source.Key),
		zap.Int("items", len(feed.Items)),
		zap.Int("reports", len(reports)),
	)
	return reports, stats, nil
}

func (c *RSSCollector) toReport(item *gofeed.Item, cutoff time.Time) (model.RawReport, bool) {
	if item == nil || item.Link == "" || strings.TrimSpace(item.Title) == "" {
		return model.RawReport{}, false
	}

	published := time.Now().UTC()
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC()
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.UTC()
	}
	if published.Before(cutoff) {
		return model.RawReport{}, false
	}

	body := item.Description
	if item.Content != "" {
		body = item.Content
	}

	if !c.matchesKeywords(item.Title, body) {
		return model.RawReport{}, false
	}

	return model.RawReport{
		SourceKey:   c.source.Key,
		SourceURL:   item.Link,
		PublishedAt: published,
		Title:       strings.TrimSpace(item.Title),
		Body:        strings.TrimSpace(body),
		Lang:        c.source.Lang,
	}, true
}

// matchesKeywords is the cheap prefilter: sources with a keyword list only
// yield items mentioning one of them. Sources without keywords pass
// everything through to the validator.
func (c *RSSCollector) matchesKeywords(title, body string) bool {
	if len(c.source.Keywords) == 0 {
		return true
	}
	text := strings.ToLower(title + " " + body)
	for _, kw := range c.source.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
