package twelvelabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"homesight/internal/config"
	"homesight/internal/services"
)

const (
	defaultBaseURL      = "https://api.twelvelabs.io/v1.3"
	defaultHTTPTimeout  = 60 * time.Second
	defaultPollInterval = 10 * time.Second
	defaultIndexTimeout = 30 * time.Minute
	defaultTemperature  = 0.2

	taskStatusReady  = "ready"
	taskStatusFailed = "failed"
)

// Client wraps the Twelve Labs video understanding API: video upload with
// indexing, and chapter-style summarization.
type Client struct {
	apiKey       string
	indexID      string
	baseURL      string
	temperature  float64
	pollInterval time.Duration
	indexTimeout time.Duration
	httpClient   *http.Client
}

// Option customizes the Twelve Labs client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithPollInterval overrides how often indexing status is checked.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// NewClient constructs a Twelve Labs API client from configuration.
func NewClient(cfg config.TwelveLabs, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	indexID := strings.TrimSpace(cfg.IndexID)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "twelvelabs", "new client", "api key required", nil)
	}
	if indexID == "" {
		return nil, services.Wrap(services.ErrConfiguration, "twelvelabs", "new client", "index id required", nil)
	}

	client := &Client{
		apiKey:       apiKey,
		indexID:      indexID,
		baseURL:      defaultBaseURL,
		temperature:  defaultTemperature,
		pollInterval: defaultPollInterval,
		indexTimeout: defaultIndexTimeout,
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		client.baseURL = strings.TrimRight(base, "/")
	}
	if cfg.ChapterTemperature > 0 {
		client.temperature = cfg.ChapterTemperature
	}
	if cfg.IndexPollInterval > 0 {
		client.pollInterval = time.Duration(cfg.IndexPollInterval) * time.Second
	}
	if cfg.IndexTimeout > 0 {
		client.indexTimeout = time.Duration(cfg.IndexTimeout) * time.Second
	}
	if cfg.RequestTimeout > 0 {
		client.httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}

	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Chapter is one generated chapter span.
type Chapter struct {
	Number  int     `json:"chapter_number"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Title   string  `json:"chapter_title"`
	Summary string  `json:"chapter_summary"`
}

// Upload submits a video file for indexing and returns the task identifier.
func (c *Client) Upload(ctx context.Context, videoPath string) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "twelvelabs", "upload", videoPath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("index_id", c.indexID); err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "encode form", err)
	}
	part, err := writer.CreateFormFile("video_file", filepath.Base(videoPath))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "encode form", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "read video", err)
	}
	if err := writer.Close(); err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "encode form", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/tasks")
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "twelvelabs", "upload", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "build request", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var task taskResponse
	if err := c.do(req, &task); err != nil {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", filepath.Base(videoPath), err)
	}
	if task.ID == "" {
		return "", services.Wrap(services.ErrTransient, "twelvelabs", "upload", "empty task id", nil)
	}
	return task.ID, nil
}

// WaitForIndexing polls the upload task until the video is ready and returns
// the video identifier. Indexing that exceeds the configured timeout fails
// with a timeout marker.
func (c *Client) WaitForIndexing(ctx context.Context, taskID string) (string, error) {
	deadline := time.Now().Add(c.indexTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		task, err := c.taskStatus(ctx, taskID)
		if err != nil {
			return "", err
		}
		switch task.Status {
		case taskStatusReady:
			if task.VideoID == "" {
				return "", services.Wrap(services.ErrTransient, "twelvelabs", "index", "ready task missing video id", nil)
			}
			return task.VideoID, nil
		case taskStatusFailed:
			return "", services.Wrap(services.ErrTransient, "twelvelabs", "index", fmt.Sprintf("task %s failed", taskID), nil)
		}

		if time.Now().After(deadline) {
			return "", services.Wrap(services.ErrTimeout, "twelvelabs", "index",
				fmt.Sprintf("task %s still %s after %s", taskID, task.Status, c.indexTimeout), nil)
		}
		select {
		case <-ctx.Done():
			return "", services.Wrap(services.ErrTimeout, "twelvelabs", "index", "canceled", ctx.Err())
		case <-ticker.C:
		}
	}
}

// GenerateChapters runs chapter-style summarization for an indexed video.
// Chapters come back numbered from one in start-time order.
func (c *Client) GenerateChapters(ctx context.Context, videoID string) ([]Chapter, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "twelvelabs", "summarize", "video id required", nil)
	}

	payload := summarizeRequest{
		VideoID:     videoID,
		Type:        "chapter",
		Prompt:      ActivityChapterPrompt,
		Temperature: c.temperature,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "twelvelabs", "summarize", "encode request", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/summarize")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "twelvelabs", "summarize", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "twelvelabs", "summarize", "build request", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var result summarizeResponse
	if err := c.do(req, &result); err != nil {
		return nil, services.Wrap(services.ErrTransient, "twelvelabs", "summarize", videoID, err)
	}

	chapters := make([]Chapter, 0, len(result.Chapters))
	for i, ch := range result.Chapters {
		chapters = append(chapters, Chapter{
			Number:  i + 1,
			Start:   ch.Start,
			End:     ch.End,
			Title:   strings.TrimSpace(ch.Title),
			Summary: strings.TrimSpace(ch.Summary),
		})
	}
	return chapters, nil
}

// ProcessVideo uploads a video, waits for indexing, and generates chapters.
func (c *Client) ProcessVideo(ctx context.Context, videoPath string) (string, []Chapter, error) {
	taskID, err := c.Upload(ctx, videoPath)
	if err != nil {
		return "", nil, err
	}
	videoID, err := c.WaitForIndexing(ctx, taskID)
	if err != nil {
		return "", nil, err
	}
	chapters, err := c.GenerateChapters(ctx, videoID)
	if err != nil {
		return videoID, nil, err
	}
	return videoID, chapters, nil
}

func (c *Client) taskStatus(ctx context.Context, taskID string) (taskResponse, error) {
	var task taskResponse
	endpoint, err := url.JoinPath(c.baseURL, "/tasks", taskID)
	if err != nil {
		return task, services.Wrap(services.ErrConfiguration, "twelvelabs", "task status", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return task, services.Wrap(services.ErrTransient, "twelvelabs", "task status", "build request", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if err := c.do(req, &task); err != nil {
		return task, services.Wrap(services.ErrTransient, "twelvelabs", "task status", taskID, err)
	}
	return task, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type taskResponse struct {
	ID      string `json:"_id"`
	Status  string `json:"status"`
	VideoID string `json:"video_id"`
}

type summarizeRequest struct {
	VideoID     string  `json:"video_id"`
	Type        string  `json:"type"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
}

type summarizeResponse struct {
	Chapters []struct {
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
		Title   string  `json:"chapter_title"`
		Summary string  `json:"chapter_summary"`
	} `json:"chapters"`
}
