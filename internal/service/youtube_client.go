package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"learnloop/internal/cache"
	"learnloop/internal/config"
	"learnloop/internal/model"
)

// YouTubeClient searches for learning videos. Each Search is two API
// calls: search.list for candidate IDs, then videos.list to join in
// duration and statistics. Calls go through a shared rate limiter so
// the pipeline's fan-out cannot burn the daily quota in one burst.
type YouTubeClient struct {
	config     *config.YouTubeConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      cache.SearchCache
}

// NewYouTubeClient creates a video-search client. The cache is
// optional; pass nil to disable result caching.
func NewYouTubeClient(cfg *config.YouTubeConfig, searchCache cache.SearchCache) *YouTubeClient {
	if !cfg.IsEnabled() {
		log.Println("Warning: YOUTUBE_API_KEY not set, video search will fail")
	}
	return &YouTubeClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:   searchCache,
	}
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
	Error *ytAPIError `json:"error"`
}

type ytSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
	} `json:"thumbnails"`
}

type ytVideosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
	Error *ytAPIError `json:"error"`
}

type ytAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  []struct {
		Reason string `json:"reason"`
	} `json:"errors"`
}

// Search returns scored-ready candidates for one query. Results are
// served from cache when available.
func (c *YouTubeClient) Search(ctx context.Context, query string) ([]model.VideoCandidate, error) {
	if c.cache != nil {
		if videos, ok := c.cache.GetSearch(ctx, query); ok {
			return videos, nil
		}
	}

	videos, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.cache != nil && len(videos) > 0 {
		c.cache.SetSearch(ctx, query, videos)
	}
	return videos, nil
}

func (c *YouTubeClient) search(ctx context.Context, query string) ([]model.VideoCandidate, error) {
	if !c.config.IsEnabled() {
		return nil, fmt.Errorf("youtube: API key not configured")
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(c.config.MaxResults)},
		"key":        {c.config.APIKey},
	}

	var searchResp ytSearchResponse
	if err := c.doGet(ctx, "/search", params, &searchResp); err != nil {
		return nil, err
	}
	if searchResp.Error != nil {
		return nil, classifyYTError(searchResp.Error)
	}
	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(searchResp.Items))
	byID := make(map[string]model.VideoCandidate, len(searchResp.Items))
	for _, item := range searchResp.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		ids = append(ids, id)
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		byID[id] = model.VideoCandidate{
			ID:           id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  published,
			URL:          "https://www.youtube.com/watch?v=" + id,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
		}
	}

	statsParams := url.Values{
		"part": {"contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.config.APIKey},
	}

	var videosResp ytVideosResponse
	if err := c.doGet(ctx, "/videos", statsParams, &videosResp); err != nil {
		return nil, err
	}
	if videosResp.Error != nil {
		return nil, classifyYTError(videosResp.Error)
	}

	videos := make([]model.VideoCandidate, 0, len(videosResp.Items))
	for _, item := range videosResp.Items {
		v, ok := byID[item.ID]
		if !ok {
			continue
		}
		v.DurationMinutes = parseISODuration(item.ContentDetails.Duration)
		v.ViewCount, _ = strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
		v.LikeCount, _ = strconv.ParseInt(item.Statistics.LikeCount, 10, 64)
		videos = append(videos, v)
	}
	return videos, nil
}

func (c *YouTubeClient) doGet(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.config.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http 429", ErrQuotaExceeded)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("youtube: unparseable response (status %d)", resp.StatusCode)
	}
	return nil
}

// classifyYTError maps the API's 403 quota reasons to the shared
// sentinel so handlers can degrade gracefully.
func classifyYTError(apiErr *ytAPIError) error {
	for _, e := range apiErr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "dailyLimitExceeded" || e.Reason == "rateLimitExceeded" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
	}
	return fmt.Errorf("youtube: API error %d: %s", apiErr.Code, apiErr.Message)
}

// parseISODuration converts an ISO-8601 duration (PT1H23M45S) to whole
// minutes, rounding seconds up so a 30-second short counts as a minute.
func parseISODuration(iso string) int {
	iso = strings.TrimPrefix(iso, "PT")
	if iso == "" {
		return 0
	}

	var hours, minutes, seconds int
	num := 0
	for _, r := range iso {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'H':
			hours, num = num, 0
		case r == 'M':
			minutes, num = num, 0
		case r == 'S':
			seconds, num = num, 0
		default:
			return 0
		}
	}

	total := hours*60 + minutes
	if seconds > 0 {
		total++
	}
	return total
}
