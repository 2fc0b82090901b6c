package collector_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dronewatch/dronewatch/internal/collector"
	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/registry"
)

func feedXML(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Politiets pressemeddelelser</title>` +
		joinItems(items) + `</channel></rss>`
}

func joinItems(items []string) string {
	var out string
	for _, it := range items {
		out += it
	}
	return out
}

func feedItem(title, link string, published time.Time, description string) string {
	return fmt.Sprintf(
		`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate><description>%s</description></item>`,
		title, link, published.Format(time.RFC1123Z), description,
	)
}

func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "DroneWatchBot")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func descriptor(feedURL string, keywords ...string) registry.SourceDescriptor {
	return registry.SourceDescriptor{
		Key:         "dk_police_nordjylland",
		Name:        "Nordjyllands Politi",
		Domain:      "politi.dk",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		FeedURL:     feedURL,
		Lang:        "da",
		Keywords:    keywords,
	}
}

func TestCollectMapsFeedItems(t *testing.T) {
	published := time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Second)
	srv := serveFeed(t, feedXML(
		feedItem("Drone over Aalborg Lufthavn", "https://politi.dk/presse/1", published, "Flytrafik indstillet."),
	))

	col := collector.NewRSSCollector(descriptor(srv.URL), zaptest.NewLogger(t))
	reports, stats, err := col.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, "dk_police_nordjylland", r.SourceKey)
	assert.Equal(t, "https://politi.dk/presse/1", r.SourceURL)
	assert.Equal(t, "Drone over Aalborg Lufthavn", r.Title)
	assert.Equal(t, "Flytrafik indstillet.", r.Body)
	assert.Equal(t, "da", r.Lang)
	assert.True(t, published.Equal(r.PublishedAt), "published %v != %v", published, r.PublishedAt)
	assert.Equal(t, 1, stats.Found)
}

func TestCollectAppliesKeywordPrefilter(t *testing.T) {
	published := time.Now().UTC().Add(-time.Hour)
	srv := serveFeed(t, feedXML(
		feedItem("Drone lukker lufthavnen", "https://politi.dk/presse/1", published, ""),
		feedItem("Trafikuheld på motorvejen", "https://politi.dk/presse/2", published, ""),
	))

	col := collector.NewRSSCollector(descriptor(srv.URL, "drone", "uav"), zaptest.NewLogger(t))
	reports, _, err := col.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "Drone lukker lufthavnen", reports[0].Title)
}

func TestCollectDropsStaleAndMalformedItems(t *testing.T) {
	fresh := time.Now().UTC().Add(-time.Hour)
	stale := time.Now().UTC().Add(-30 * 24 * time.Hour)
	srv := serveFeed(t, feedXML(
		feedItem("Drone over havnen", "https://politi.dk/presse/1", fresh, ""),
		feedItem("Drone over basen", "https://politi.dk/presse/2", stale, ""),
		feedItem("", "https://politi.dk/presse/3", fresh, "no title"),
	))

	col := collector.NewRSSCollector(descriptor(srv.URL), zaptest.NewLogger(t))
	reports, _, err := col.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, "Drone over havnen", reports[0].Title)
}

func TestCollectReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	col := collector.NewRSSCollector(descriptor(srv.URL), zaptest.NewLogger(t))
	_, stats, err := col.Collect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, 1, stats.Errors)
}
