package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"learnloop/internal/config"
	"learnloop/internal/recommend"
)

// GeminiClient wraps the Gemini generateContent API. Each task is
// routed to the model configured for it, so interactive operations run
// on fast models and narratives on quality ones.
type GeminiClient struct {
	config     *config.AIConfig
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini API client from config
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	if !cfg.IsEnabled() {
		log.Println("Warning: GEMINI_API_KEY not set, model calls will fail")
	}
	return &GeminiClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig map[string]interface{} `json:"generationConfig"`
	SafetySettings   []map[string]string    `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *geminiAPIError `json:"error"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Details []struct {
		Reason string `json:"reason"`
	} `json:"details"`
}

// modelFor maps a pipeline task to the configured model name.
func (c *GeminiClient) modelFor(task recommend.Task) string {
	switch task {
	case recommend.TaskSurvey:
		return c.config.Models.Survey
	case recommend.TaskOptions:
		return c.config.Models.Options
	case recommend.TaskProfile:
		return c.config.Models.Profile
	case recommend.TaskCriteria:
		return c.config.Models.Criteria
	case recommend.TaskQueries:
		return c.config.Models.Queries
	case recommend.TaskRoadmap:
		return c.config.Models.Roadmap
	case recommend.TaskQuiz:
		return c.config.Models.Quiz
	default:
		return c.config.Models.Chat
	}
}

// Generate sends a single-turn prompt and returns the raw model text.
// Quota errors are retried with exponential backoff up to MaxRetries;
// everything else fails immediately.
func (c *GeminiClient) Generate(ctx context.Context, task recommend.Task, prompt string) (string, error) {
	contents := []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	return c.call(ctx, c.modelFor(task), contents)
}

// GenerateChat sends a multi-turn conversation. History alternates
// user/model roles the way the API expects.
func (c *GeminiClient) GenerateChat(ctx context.Context, task recommend.Task, history []ChatTurn, message string) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		role := "user"
		if turn.FromModel {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})
	return c.call(ctx, c.modelFor(task), contents)
}

// ChatTurn is one prior exchange passed as model context.
type ChatTurn struct {
	Text      string
	FromModel bool
}

func (c *GeminiClient) call(ctx context.Context, modelName string, contents []geminiContent) (string, error) {
	if !c.config.IsEnabled() {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	gen := c.config.Generation
	reqBody := geminiRequest{
		Contents: contents,
		// Deliberately no responseMimeType: prompts that want JSON say
		// so themselves, and the normalizer recovers from prose anyway.
		GenerationConfig: map[string]interface{}{
			"temperature":     gen.Temperature,
			"topK":            gen.TopK,
			"topP":            gen.TopP,
			"maxOutputTokens": gen.MaxOutputTokens,
		},
		SafetySettings: []map[string]string{
			{"category": "HARM_CATEGORY_HARASSMENT", "threshold": gen.SafetyThreshold},
			{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": gen.SafetyThreshold},
			{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": gen.SafetyThreshold},
			{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": gen.SafetyThreshold},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", c.config.ModelEndpoint(modelName), c.config.APIKey)

	var lastErr error
	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			log.Printf("[Gemini] quota hit, retry %d/%d in %v", attempt, c.config.MaxRetries-1, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := c.callOnce(ctx, url, jsonBody)
		if err == nil {
			return text, nil
		}
		lastErr = err
		// Only quota exhaustion is worth a retry.
		if !isQuotaError(err) {
			return "", err
		}
	}
	return "", lastErr
}

func (c *GeminiClient) callOnce(ctx context.Context, url string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return "", fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini: unparseable response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode >= 400 || parsed.Error != nil {
		return "", c.classifyAPIError(resp.StatusCode, parsed.Error, respBody)
	}

	if parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrSafetyBlocked, parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		if len(parsed.Candidates) > 0 && parsed.Candidates[0].FinishReason == "SAFETY" {
			return "", fmt.Errorf("%w: candidate finished with SAFETY", ErrSafetyBlocked)
		}
		return "", fmt.Errorf("gemini: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// classifyAPIError maps API failures to sentinels. Structured fields
// are checked first; the "quota" substring check is a fallback for
// error shapes the API has changed before.
func (c *GeminiClient) classifyAPIError(status int, apiErr *geminiAPIError, raw []byte) error {
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http 429", ErrQuotaExceeded)
	}
	if apiErr != nil {
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
		for _, d := range apiErr.Details {
			if d.Reason == "quotaExceeded" || d.Reason == "rateLimitExceeded" {
				return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
			}
		}
		if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
		return fmt.Errorf("gemini: API error %d %s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
	if strings.Contains(strings.ToLower(string(raw)), "quota") {
		return fmt.Errorf("%w: http %d", ErrQuotaExceeded, status)
	}
	return fmt.Errorf("gemini: API error %d: %s", status, string(raw))
}

func isQuotaError(err error) bool {
	return errors.Is(err, ErrQuotaExceeded)
}
