package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"homesight/internal/config"
	"homesight/internal/services"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	sourceLanguage     = "en"

	// Texts longer than this are translated sentence by sentence to stay
	// under typical request limits.
	chunkLimit = 500
)

// Client translates chapter titles and summaries via an HTTP translation
// service. Results are cached per text so repeated feed renders do not
// re-request identical descriptions.
type Client struct {
	baseURL    string
	target     string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string]string
}

// Option customizes the translation client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a translation client from configuration. The target
// language must be a valid BCP 47 tag.
func NewClient(cfg config.Translate, opts ...Option) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, "translate", "new client", "base url required", nil)
	}
	target := strings.TrimSpace(cfg.TargetLanguage)
	tag, err := language.Parse(target)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "translate", "new client",
			fmt.Sprintf("invalid target language %q", target), err)
	}

	client := &Client{
		baseURL:    strings.TrimRight(base, "/"),
		target:     tag.String(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		cache:      make(map[string]string),
	}
	if cfg.RequestTimeout > 0 {
		client.httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Target returns the normalized target language tag.
func (c *Client) Target() string {
	return c.target
}

// Translate converts text to the target language. On failure the original
// text comes back alongside the error so callers can always display
// something.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text, nil
	}

	c.mu.Lock()
	if cached, ok := c.cache[trimmed]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var (
		translated string
		err        error
	)
	if len(trimmed) > chunkLimit {
		translated, err = c.translateChunked(ctx, trimmed)
	} else {
		translated, err = c.translateOne(ctx, trimmed)
	}
	if err != nil {
		return text, err
	}

	c.mu.Lock()
	c.cache[trimmed] = translated
	c.mu.Unlock()
	return translated, nil
}

// translateChunked splits on sentence boundaries and translates each piece.
func (c *Client) translateChunked(ctx context.Context, text string) (string, error) {
	sentences := strings.Split(text, ". ")
	translated := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		out, err := c.translateOne(ctx, sentence)
		if err != nil {
			return "", err
		}
		translated = append(translated, out)
	}
	return strings.Join(translated, ". "), nil
}

func (c *Client) translateOne(ctx context.Context, text string) (string, error) {
	payload := translateRequest{
		Text:   text,
		Source: sourceLanguage,
		Target: c.target,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "encode request", "", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/translate")
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "translate", "build url", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "build request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "request", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "read body", "", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrTransient, "translate", "request",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var result translateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "decode response", "", err)
	}
	if strings.TrimSpace(result.TranslatedText) == "" {
		return "", services.Wrap(services.ErrTransient, "translate", "decode response", "empty translation", nil)
	}
	return result.TranslatedText, nil
}

type translateRequest struct {
	Text   string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}
