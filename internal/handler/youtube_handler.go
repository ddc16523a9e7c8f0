package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/repository"
	"github.com/somang-church/website-api/internal/youtube"
	"github.com/somang-church/website-api/pkg/logger"
)

// channelIDSettingKey is the site setting that points the public video
// listing at a channel.
const channelIDSettingKey = "youtube_channel_id"

// YouTubeHandler exposes channel statistics (Data API) and the keyless
// RSS-based video listing.
type YouTubeHandler struct {
	statsClient *youtube.Client
	scraper     *youtube.Scraper
	settingRepo repository.SettingRepository
	feedLimit   int
}

// NewYouTubeHandler creates a new YouTubeHandler instance.
// statsClient may be nil when no API key is configured; the stats endpoints
// then answer 500.
func NewYouTubeHandler(statsClient *youtube.Client, scraper *youtube.Scraper, settingRepo repository.SettingRepository, feedLimit int) *YouTubeHandler {
	return &YouTubeHandler{
		statsClient: statsClient,
		scraper:     scraper,
		settingRepo: settingRepo,
		feedLimit:   feedLimit,
	}
}

type resolveRequest struct {
	Input string `json:"input"`
}

// Stats handles GET /api/admin/youtube/stats?ids=a,b,c.
func (h *YouTubeHandler) Stats(c *gin.Context) {
	ids := strings.TrimSpace(c.Query("ids"))
	if ids == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "ids query parameter is required")
		return
	}
	if h.statsClient == nil {
		errorResponse(c, http.StatusInternalServerError, "Internal Server Error", "YouTube API key is not configured")
		return
	}

	stats, err := h.statsClient.VideoStats(c.Request.Context(), strings.Split(ids, ","))
	if err != nil {
		logger.Log.Error("YouTube stats fetch failed", zap.Error(err))
		errorResponse(c, http.StatusBadGateway, "Bad Gateway", "failed to fetch video statistics from YouTube")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ChannelVideos handles GET /api/admin/youtube/channel-videos.
func (h *YouTubeHandler) ChannelVideos(c *gin.Context) {
	if h.statsClient == nil {
		errorResponse(c, http.StatusInternalServerError, "Internal Server Error", "YouTube API key is not configured")
		return
	}

	videos, err := h.statsClient.ChannelVideos(c.Request.Context())
	if err != nil {
		logger.Log.Error("YouTube channel videos fetch failed", zap.Error(err))
		errorResponse(c, http.StatusBadGateway, "Bad Gateway", "failed to fetch channel videos from YouTube")
		return
	}

	c.JSON(http.StatusOK, videos)
}

// Resolve handles POST /api/admin/youtube/resolve: a channel handle or URL
// in, a canonical UC channel ID out.
func (h *YouTubeHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "input is required")
		return
	}

	channelID := h.scraper.ResolveChannelID(c.Request.Context(), req.Input)
	if channelID == "" {
		errorResponse(c, http.StatusBadRequest, "Bad Request", "could not resolve a channel ID from the given input")
		return
	}

	c.JSON(http.StatusOK, gin.H{"channelId": channelID})
}

// PublicVideos handles GET /api/videos: the latest uploads of the channel
// configured in site settings, read from the public RSS feed. An unset
// channel or a feed failure yields an empty list, never an error.
func (h *YouTubeHandler) PublicVideos(c *gin.Context) {
	setting, err := h.settingRepo.Get(c.Request.Context(), channelIDSettingKey)
	if err != nil || setting.Value == "" {
		c.JSON(http.StatusOK, []youtube.FeedVideo{})
		return
	}

	limit := h.feedLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	videos := h.scraper.FetchChannelVideos(c.Request.Context(), setting.Value, limit)
	if videos == nil {
		videos = []youtube.FeedVideo{}
	}
	c.JSON(http.StatusOK, videos)
}
