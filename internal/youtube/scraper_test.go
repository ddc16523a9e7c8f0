package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somang-church/website-api/pkg/logger"
)

func init() {
	_ = logger.Init("error", "")
}

func newTestScraper(serverURL string) *Scraper {
	s := NewScraper(http.DefaultClient, 0)
	s.BaseURL = serverURL
	return s
}

func TestResolveChannelID_PassthroughWithoutNetwork(t *testing.T) {
	// No server behind this scraper; a network call would fail loudly.
	s := newTestScraper("http://127.0.0.1:0")

	got := s.ResolveChannelID(context.Background(), "UCf0t8WhqbR8tts3fcBF-NnA")

	assert.Equal(t, "UCf0t8WhqbR8tts3fcBF-NnA", got)
}

func TestResolveChannelID_FromHandle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "channelId json field",
			body: `<html>{"channelId":"UCaaaaaaaaaaaaaaaaaaaaaa"}</html>`,
			want: "UCaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name: "meta itemprop tag",
			body: `<html><meta itemprop="channelId" content="UCbbbbbbbbbbbbbbbbbbbbbb"></html>`,
			want: "UCbbbbbbbbbbbbbbbbbbbbbb",
		},
		{
			name: "externalId json field",
			body: `<html>{"externalId":"UCcccccccccccccccccccccc"}</html>`,
			want: "UCcccccccccccccccccccccc",
		},
		{
			name: "no channel id in page",
			body: `<html>nothing useful</html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotUA string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotUA = r.Header.Get("User-Agent")
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			s := newTestScraper(server.URL)
			got := s.ResolveChannelID(context.Background(), "@somangchurch")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "/@somangchurch", gotPath)
			assert.Contains(t, gotUA, "Mozilla/5.0")
		})
	}
}

func TestResolveChannelID_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := newTestScraper(server.URL)

	assert.Empty(t, s.ResolveChannelID(context.Background(), "@missing"))
}

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015">
  <title>Channel uploads</title>
  <entry>
    <yt:videoId>dQw4w9WgXcQ</yt:videoId>
    <title>Sunday Service &amp; Prayer</title>
    <published>2024-06-02T10:00:00+00:00</published>
  </entry>
  <entry>
    <yt:videoId>abc123DEF45</yt:videoId>
    <title>Wednesday Bible Study</title>
    <published>2024-06-05T19:00:00+00:00</published>
  </entry>
  <entry>
    <title>Broken entry without a video id</title>
    <published>2024-06-06T19:00:00+00:00</published>
  </entry>
</feed>`

func TestFetchChannelVideos(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, testFeed)
	}))
	defer server.Close()

	s := newTestScraper(server.URL)
	videos := s.FetchChannelVideos(context.Background(), "UCaaaaaaaaaaaaaaaaaaaaaa", 15)

	require.Len(t, videos, 2)
	assert.Equal(t, "channel_id=UCaaaaaaaaaaaaaaaaaaaaaa", gotQuery)

	assert.Equal(t, "dQw4w9WgXcQ", videos[0].ID)
	assert.Equal(t, "Sunday Service & Prayer", videos[0].Title)
	assert.Equal(t, "2024-06-02T10:00:00+00:00", videos[0].PublishedAt)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg", videos[0].Thumbnail)

	assert.Equal(t, "abc123DEF45", videos[1].ID)
}

func TestFetchChannelVideos_HonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	}))
	defer server.Close()

	s := newTestScraper(server.URL)
	videos := s.FetchChannelVideos(context.Background(), "UCaaaaaaaaaaaaaaaaaaaaaa", 1)

	require.Len(t, videos, 1)
	assert.Equal(t, "dQw4w9WgXcQ", videos[0].ID)
}

func TestFetchChannelVideos_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s := newTestScraper(server.URL)

	assert.Empty(t, s.FetchChannelVideos(context.Background(), "UCaaaaaaaaaaaaaaaaaaaaaa", 15))
}
