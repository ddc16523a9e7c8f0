package youtube

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/somang-church/website-api/pkg/logger"
)

const (
	// desktopUserAgent is sent on channel page fetches; YouTube serves a
	// different (ID-free) page to unknown clients.
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultFeedLimit = 15
)

// channelIDPagePatterns are scanned in order against the channel page HTML;
// the first UC match wins.
var channelIDPagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"channelId":"(UC[a-zA-Z0-9_-]{22})"`),
	regexp.MustCompile(`<meta itemprop="channelId" content="(UC[a-zA-Z0-9_-]{22})">`),
	regexp.MustCompile(`"externalId":"(UC[a-zA-Z0-9_-]{22})"`),
}

var (
	feedEntryRegex = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)

	feedVideoIDRegex   = regexp.MustCompile(`<yt:videoId>([^<]+)</yt:videoId>`)
	feedTitleRegex     = regexp.MustCompile(`<title>([^<]+)</title>`)
	feedPublishedRegex = regexp.MustCompile(`<published>([^<]+)</published>`)
)

// FeedVideo is one entry of a channel's public RSS feed.
type FeedVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	Thumbnail   string `json:"thumbnail"`
}

// Scraper resolves channel handles and reads public RSS feeds without an
// API key. All failures degrade to empty results; callers treat "no data"
// as a normal outcome.
type Scraper struct {
	// BaseURL is the youtube.com origin used for channel pages and RSS
	// feeds. Override in tests.
	BaseURL string

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewScraper creates a Scraper. fetchesPerSecond caps outbound requests to
// youtube.com; zero or negative disables the cap.
func NewScraper(httpClient *http.Client, fetchesPerSecond float64) *Scraper {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	var limiter *rate.Limiter
	if fetchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(fetchesPerSecond), 1)
	}

	return &Scraper{
		BaseURL:    "https://www.youtube.com",
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// ResolveChannelID resolves a channel ID, @handle or channel URL to a
// canonical UC channel ID. A 24-character UC input is returned unchanged
// with no network call. Returns "" when resolution fails for any reason.
func (s *Scraper) ResolveChannelID(ctx context.Context, input string) string {
	if IsChannelID(input) {
		return input
	}

	handle := strings.TrimPrefix(strings.TrimSpace(input), "@")

	var url string
	if strings.HasPrefix(handle, "http") {
		url = handle
	} else {
		url = fmt.Sprintf("%s/@%s", s.BaseURL, handle)
	}

	body, err := s.fetch(ctx, url, desktopUserAgent)
	if err != nil {
		logger.Log.Warn("Failed to fetch channel page",
			zap.Error(err),
			zap.String("input", input),
		)
		return ""
	}

	for _, pattern := range channelIDPagePatterns {
		if m := pattern.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	}

	logger.Log.Warn("No channel ID found in channel page", zap.String("input", input))
	return ""
}

// FetchChannelVideos reads the channel's public RSS feed and returns up to
// limit videos, newest first as the feed orders them. Entries missing an id
// or title are dropped. Returns an empty slice on any fetch error.
func (s *Scraper) FetchChannelVideos(ctx context.Context, channelID string, limit int) []FeedVideo {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	url := fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", s.BaseURL, channelID)

	body, err := s.fetch(ctx, url, "")
	if err != nil {
		logger.Log.Warn("Failed to fetch channel feed",
			zap.Error(err),
			zap.String("channelId", channelID),
		)
		return nil
	}

	var videos []FeedVideo
	for _, m := range feedEntryRegex.FindAllStringSubmatch(body, -1) {
		entry := m[1]

		id := extractTag(entry, feedVideoIDRegex)
		title := extractTag(entry, feedTitleRegex)
		if id == "" || title == "" {
			continue
		}

		videos = append(videos, FeedVideo{
			ID:          id,
			Title:       title,
			PublishedAt: extractTag(entry, feedPublishedRegex),
			Thumbnail:   fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", id),
		})

		if len(videos) == limit {
			break
		}
	}

	return videos
}

func (s *Scraper) fetch(ctx context.Context, url, userAgent string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}

// extractTag pulls a tag's text content out of a feed entry and decodes
// HTML entities.
func extractTag(entry string, pattern *regexp.Regexp) string {
	if m := pattern.FindStringSubmatch(entry); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	}
	return ""
}
