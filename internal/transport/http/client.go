package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"festival-quiz/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultTimeout   = 5 * time.Second
	defaultRetryWait = 200 * time.Millisecond
	textContentType  = "text/plain; charset=utf-8"
)

// APIError is a non-2xx answer from the remote service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Is makes every APIError match domain.ErrTransport.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrTransport
}

// ClientConfig configures the remote client. Retries apply to idempotent calls only.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
	Transport http.RoundTripper
}

// Client speaks the festival quiz HTTP contract. It implements app.ThemeRemote,
// app.RankingRemote and app.QuestionSource.
type Client struct {
	baseURL string
	timeout time.Duration
	// rest retries transport errors and 5xx; once never retries (submit, reset).
	rest *resty.Client
	once *resty.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryWait := cfg.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}

	rest := newResty(baseURL, timeout, cfg.Transport).
		SetRetryCount(retries).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(4 * retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})

	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		rest:    rest,
		once:    newResty(baseURL, timeout, cfg.Transport),
	}
}

func newResty(baseURL string, timeout time.Duration, transport http.RoundTripper) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	if transport != nil {
		client.SetTransport(transport)
	}
	return client
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// CurrentTheme returns the remote theme as sent; blank means unset.
func (c *Client) CurrentTheme(ctx context.Context) (string, error) {
	resp, err := c.rest.R().SetContext(ctx).Get("/api/theme/current")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return resp.String(), nil
}

func (c *Client) SaveTheme(ctx context.Context, theme string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", textContentType).
		SetBody(theme).
		Post("/api/theme/save")
	return check(resp, err)
}

// SubmitScore posts "<name>,<score>". Commas in name are not escaped.
func (c *Client) SubmitScore(ctx context.Context, userName string, score int) error {
	resp, err := c.once.R().
		SetContext(ctx).
		SetHeader("Content-Type", textContentType).
		SetBody(userName + "," + strconv.Itoa(score)).
		Post("/api/quiz/submit")
	return check(resp, err)
}

func (c *Client) Ranking(ctx context.Context) ([]domain.RankingEntry, error) {
	resp, err := c.rest.R().SetContext(ctx).Get("/api/quiz/ranking")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	var entries []domain.RankingEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("%w: ranking: %v", domain.ErrMalformedData, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: ranking: null body", domain.ErrMalformedData)
	}
	return entries, nil
}

func (c *Client) ResetRanking(ctx context.Context) error {
	resp, err := c.once.R().SetContext(ctx).Post("/api/quiz/reset")
	return check(resp, err)
}

func (c *Client) LoadQuestions(ctx context.Context, setID string) ([]domain.Question, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("set", setID).
		Get("/api/quiz/questions")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestionSetNotFound, setID)
	}
	if err := check(resp, err); err != nil {
		return nil, err
	}
	var questions []domain.Question
	if err := json.Unmarshal(resp.Body(), &questions); err != nil {
		return nil, fmt.Errorf("%w: questions: %v", domain.ErrMalformedData, err)
	}
	return questions, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode(), Message: strings.TrimSpace(resp.String())}
	}
	return nil
}
