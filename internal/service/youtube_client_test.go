package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/config"
)

func ytTestConfig(baseURL string) *config.YouTubeConfig {
	cfg := config.DefaultYouTubeConfig()
	cfg.APIKey = "yt-key"
	cfg.BaseURL = baseURL
	cfg.RequestsPerSecond = 1000 // no throttling in tests
	return cfg
}

func TestYouTubeSearchJoinsStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			assert.Equal(t, "go tutorial", r.URL.Query().Get("q"))
			w.Write([]byte(`{"items":[
				{"id":{"videoId":"abc"},"snippet":{"title":"Go Tutorial","description":"learn go","channelTitle":"GoTime","publishedAt":"2024-01-15T00:00:00Z","thumbnails":{"medium":{"url":"http://thumb/abc"}}}},
				{"id":{"videoId":"def"},"snippet":{"title":"Go Deep Dive","channelTitle":"GoTime"}}
			]}`))
		case "/videos":
			assert.Equal(t, "abc,def", r.URL.Query().Get("id"))
			w.Write([]byte(`{"items":[
				{"id":"abc","contentDetails":{"duration":"PT15M30S"},"statistics":{"viewCount":"12000","likeCount":"800"}},
				{"id":"def","contentDetails":{"duration":"PT1H2M"},"statistics":{"viewCount":"500","likeCount":"20"}}
			]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewYouTubeClient(ytTestConfig(server.URL), nil)
	videos, err := client.Search(context.Background(), "go tutorial")
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "abc", videos[0].ID)
	assert.Equal(t, "Go Tutorial", videos[0].Title)
	assert.Equal(t, 16, videos[0].DurationMinutes) // 15m30s rounds up
	assert.Equal(t, int64(12000), videos[0].ViewCount)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", videos[0].URL)
	assert.Equal(t, "http://thumb/abc", videos[0].Thumbnail)

	assert.Equal(t, 62, videos[1].DurationMinutes)
}

func TestYouTubeSearchEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := NewYouTubeClient(ytTestConfig(server.URL), nil)
	videos, err := client.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestYouTubeQuotaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota.","errors":[{"reason":"quotaExceeded"}]}}`))
	}))
	defer server.Close()

	client := NewYouTubeClient(ytTestConfig(server.URL), nil)
	_, err := client.Search(context.Background(), "go")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestYouTubeNonQuotaAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"invalid parameter"}}`))
	}))
	defer server.Close()

	client := NewYouTubeClient(ytTestConfig(server.URL), nil)
	_, err := client.Search(context.Background(), "go")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
}

func TestYouTubeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	cfg := ytTestConfig(server.URL)
	cfg.TimeoutMS = 50

	client := NewYouTubeClient(cfg, nil)
	_, err := client.Search(context.Background(), "go")
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
}

func TestParseISODuration(t *testing.T) {
	assert.Equal(t, 15, parseISODuration("PT15M"))
	assert.Equal(t, 62, parseISODuration("PT1H2M"))
	assert.Equal(t, 16, parseISODuration("PT15M30S"))
	assert.Equal(t, 1, parseISODuration("PT45S"))
	assert.Equal(t, 60, parseISODuration("PT1H"))
	assert.Equal(t, 0, parseISODuration(""))
	assert.Equal(t, 0, parseISODuration("P1D"))
}
