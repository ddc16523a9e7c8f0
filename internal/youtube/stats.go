package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	dataAPIBaseURL = "https://www.googleapis.com/youtube/v3"

	// The Data API caps both playlistItems pages and videos lookups at 50.
	statsBatchSize    = 50
	maxPlaylistPages  = 3
	playlistPageItems = 50
)

// VideoStats is the per-video statistics row returned by the Data API.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoStats struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	PublishedAt  string `json:"publishedAt"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
}

// ChannelVideo is a VideoStats row plus its thumbnail, as listed from the
// channel's uploads playlist.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ChannelVideo struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnail    string `json:"thumbnail"`
	ViewCount    int64  `json:"viewCount"`
	LikeCount    int64  `json:"likeCount"`
	CommentCount int64  `json:"commentCount"`
}

// Client talks to the YouTube Data API v3.
type Client struct {
	// BaseURL is the Data API origin. Override in tests.
	BaseURL string

	apiKey            string
	uploadsPlaylistID string
	httpClient        *http.Client
}

// NewClient creates a Data API client. uploadsPlaylistID is the channel's
// uploads playlist used by ChannelVideos.
func NewClient(apiKey, uploadsPlaylistID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		BaseURL:           dataAPIBaseURL,
		apiKey:            apiKey,
		uploadsPlaylistID: uploadsPlaylistID,
		httpClient:        httpClient,
	}
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			ResourceID struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoStats fetches statistics for the given video IDs in one request.
// Unknown IDs are silently absent from the result, as the API omits them.
func (c *Client) VideoStats(ctx context.Context, videoIDs []string) ([]VideoStats, error) {
	var data videosResponse
	if err := c.get(ctx, "/videos", url.Values{
		"part": {"statistics,snippet"},
		"id":   {strings.Join(videoIDs, ",")},
	}, &data); err != nil {
		return nil, err
	}

	stats := make([]VideoStats, 0, len(data.Items))
	for _, item := range data.Items {
		stats = append(stats, VideoStats{
			VideoID:      item.ID,
			Title:        item.Snippet.Title,
			PublishedAt:  item.Snippet.PublishedAt,
			ViewCount:    parseCount(item.Statistics.ViewCount),
			LikeCount:    parseCount(item.Statistics.LikeCount),
			CommentCount: parseCount(item.Statistics.CommentCount),
		})
	}

	return stats, nil
}

// ChannelVideos lists the uploads playlist (up to three pages of fifty) and
// joins each video with its statistics, newest first.
func (c *Client) ChannelVideos(ctx context.Context) ([]ChannelVideo, error) {
	videoIDs, err := c.listUploads(ctx)
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return []ChannelVideo{}, nil
	}

	videos := make([]ChannelVideo, 0, len(videoIDs))
	for i := 0; i < len(videoIDs); i += statsBatchSize {
		end := i + statsBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		var data videosResponse
		if err := c.get(ctx, "/videos", url.Values{
			"part": {"statistics,snippet"},
			"id":   {strings.Join(videoIDs[i:end], ",")},
		}, &data); err != nil {
			return nil, err
		}

		for _, item := range data.Items {
			thumbnail := item.Snippet.Thumbnails.Medium.URL
			if thumbnail == "" {
				thumbnail = item.Snippet.Thumbnails.Default.URL
			}

			videos = append(videos, ChannelVideo{
				VideoID:      item.ID,
				Title:        item.Snippet.Title,
				PublishedAt:  item.Snippet.PublishedAt,
				Thumbnail:    thumbnail,
				ViewCount:    parseCount(item.Statistics.ViewCount),
				LikeCount:    parseCount(item.Statistics.LikeCount),
				CommentCount: parseCount(item.Statistics.CommentCount),
			})
		}
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].PublishedAt > videos[j].PublishedAt
	})

	return videos, nil
}

func (c *Client) listUploads(ctx context.Context) ([]string, error) {
	var videoIDs []string
	pageToken := ""

	for page := 0; page < maxPlaylistPages; page++ {
		params := url.Values{
			"part":       {"snippet"},
			"playlistId": {c.uploadsPlaylistID},
			"maxResults": {strconv.Itoa(playlistPageItems)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var data playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", params, &data); err != nil {
			return nil, err
		}

		for _, item := range data.Items {
			if vid := item.Snippet.ResourceID.VideoID; vid != "" {
				videoIDs = append(videoIDs, vid)
			}
		}

		pageToken = data.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videoIDs, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call youtube api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube api response: %w", err)
	}

	return nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
