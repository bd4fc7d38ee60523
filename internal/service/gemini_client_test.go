package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/config"
	"learnloop/internal/recommend"
)

func geminiTestConfig(baseURL string) *config.AIConfig {
	cfg := config.DefaultAIConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	cfg.MaxRetries = 3
	cfg.TimeoutMS = 2000
	return cfg
}

func TestGeminiGenerateSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello from the model"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	out, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", out)
}

func TestGeminiQuotaRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"recovered"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	out, err := client.Generate(context.Background(), recommend.TaskQueries, "hi")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGeminiQuotaExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestGeminiStructuredQuotaOn403(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"status":"PERMISSION_DENIED","message":"Quota exceeded for requests","details":[{"reason":"quotaExceeded"}]}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, int32(3), calls.Load(), "quota errors retry up to MaxRetries")
}

func TestGeminiNonQuotaErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad request"}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeminiSafetyBlock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	assert.ErrorIs(t, err, ErrSafetyBlocked)
}

func TestGeminiTimeoutNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"too late"}]}}]}`))
	}))
	defer server.Close()

	cfg := geminiTestConfig(server.URL)
	cfg.TimeoutMS = 50

	client := NewGeminiClient(cfg)
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	assert.ErrorIs(t, err, ErrUpstreamTimeout)
	assert.Equal(t, int32(1), calls.Load(), "a timed-out call is not retried")
}

func TestGeminiChatSendsHistoryRoles(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(geminiTestConfig(server.URL))
	history := []ChatTurn{
		{Text: "what is a slice?", FromModel: false},
		{Text: "a view over an array", FromModel: true},
	}
	_, err := client.GenerateChat(context.Background(), recommend.TaskChat, history, "and a map?")
	require.NoError(t, err)

	assert.Contains(t, gotBody, `"role":"user"`)
	assert.Contains(t, gotBody, `"role":"model"`)
	assert.Contains(t, gotBody, "and a map?")
}

func TestGeminiDisabledWithoutKey(t *testing.T) {
	cfg := config.DefaultAIConfig()
	cfg.APIKey = ""

	client := NewGeminiClient(cfg)
	_, err := client.Generate(context.Background(), recommend.TaskChat, "hi")
	assert.Error(t, err)
}
