// Package gemini suggests related products with a Gemini model.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var _ port.ProductSuggester = (*Suggester)(nil)

var ErrNoAPIKey = errors.New("api key is required")

const (
	DefaultModel       = "gemini-2.0-flash"
	defaultConcurrency = 3
	defaultInterval    = 350 * time.Millisecond
	defaultTemperature = 0.3
	defaultAttempts    = 3
	defaultBackoff     = 200 * time.Millisecond
)

type config struct {
	model       string
	concurrency int
	interval    time.Duration
	temperature float32
	attempts    int
}

type Opt func(*config)

func ModelOpt(name string) Opt {
	return func(c *config) {
		if name != "" {
			c.model = name
		}
	}
}

func ConcurrencyOpt(n int) Opt {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// IntervalOpt sets the minimum time between two calls.
func IntervalOpt(d time.Duration) Opt {
	return func(c *config) {
		if d >= 0 {
			c.interval = d
		}
	}
}

func TemperatureOpt(t float32) Opt {
	return func(c *config) {
		c.temperature = t
	}
}

func AttemptsOpt(n int) Opt {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

type Suggester struct {
	client *genai.Client
	model  *genai.GenerativeModel
	policy retry.Policy

	sem   chan struct{}
	mu    sync.Mutex
	last  time.Time
	delay time.Duration
}

func New(ctx context.Context, apiKey string, opts ...Opt) (*Suggester, error) {
	const op = "gemini.New"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoAPIKey)
	}

	cfg := config{
		model:       DefaultModel,
		concurrency: defaultConcurrency,
		interval:    defaultInterval,
		temperature: defaultTemperature,
		attempts:    defaultAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create client: %w", op, err)
	}

	model := client.GenerativeModel(cfg.model)
	model.SetTemperature(cfg.temperature)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestedProductSlugs": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"suggestedProductSlugs"},
	}

	return &Suggester{
		client: client,
		model:  model,
		policy: retry.Policy{
			MaxAttempts: cfg.attempts,
			Backoff:     retry.ExponentialBackoff(defaultBackoff),
			ShouldRetry: transient,
		},
		sem:   make(chan struct{}, cfg.concurrency),
		delay: cfg.interval,
	}, nil
}

func (s *Suggester) SuggestProducts(
	ctx context.Context, p domain.SuggestionPrompt,
) (domain.SuggestionResponse, error) {
	const op = "Suggester.SuggestProducts"
	log := slog.With("op", op)

	text, err := renderPrompt(p)
	if err != nil {
		return domain.SuggestionResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := retry.DoWithResult(ctx, s.policy,
		func() (domain.SuggestionResponse, error) {
			release, err := s.acquire(ctx)
			if err != nil {
				return domain.SuggestionResponse{}, err
			}
			defer release()

			out, err := s.model.GenerateContent(ctx, genai.Text(text))
			if err != nil {
				log.Warn("model call failed", "err", err)
				return domain.SuggestionResponse{}, err
			}
			return parseAnswer(extractText(out))
		},
	)
	if err != nil {
		return domain.SuggestionResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

func (s *Suggester) Close() {
	const op = "Suggester.Close"
	if err := s.client.Close(); err != nil {
		slog.Error("failed to close client", "op", op, "err", err)
	}
}

// acquire takes a concurrency slot and keeps the minimum interval since
// the previous call.
func (s *Suggester) acquire(ctx context.Context) (func(), error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	release := func() { <-s.sem }

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.last.IsZero() {
		if wait := s.delay - time.Since(s.last); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				release()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	s.last = time.Now()
	return release, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	return b.String()
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, errMalformedAnswer) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
