// ABOUTME: Gateway to the remote text-inference service.
// ABOUTME: Serializes requests, retries rate limits with backoff, never leaks transport errors.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable means the remote service could not produce a result
	// after exhausting retries, or is not configured at all. Callers treat
	// it as transient and fall back to local values.
	ErrUnavailable = errors.New("inference service unavailable")

	// ErrRateLimited is an ErrUnavailable whose final failure was a 429.
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrUnavailable)

	// ErrCooldown means the caller-facing cooldown window for the operation
	// category is still active and no request was attempted.
	ErrCooldown = errors.New("operation is cooling down")
)

// Config holds gateway settings. Zero-value fields fall back to defaults;
// a negative retry, cycle, or duration knob selects an explicit zero
// (no retries, no wait, no cooldown). The knobs exist so tests can shrink
// the schedule.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	MaxRetries    int           // retries after the first attempt
	BaseDelay     time.Duration // initial backoff, doubled each attempt
	PollInterval  time.Duration // single-flight wait poll interval
	MaxPollCycles int           // poll cycles before proceeding anyway

	CleanCooldown     time.Duration // caller cooldown after success or plain failure
	ThrottledCooldown time.Duration // caller cooldown after a rate-limited outcome

	HTTPClient *http.Client
}

const (
	defaultBaseURL           = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel             = "models/gemini-1.5-flash"
	defaultMaxRetries        = 5
	defaultBaseDelay         = 1200 * time.Millisecond
	defaultPollInterval      = 250 * time.Millisecond
	defaultMaxPollCycles     = 10
	defaultCleanCooldown     = 30 * time.Second
	defaultThrottledCooldown = 2 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BaseDelay == 0 {
		c.BaseDelay = defaultBaseDelay
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.MaxPollCycles == 0 {
		c.MaxPollCycles = defaultMaxPollCycles
	}
	if c.CleanCooldown == 0 {
		c.CleanCooldown = defaultCleanCooldown
	}
	if c.ThrottledCooldown == 0 {
		c.ThrottledCooldown = defaultThrottledCooldown
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}

	// Negative knobs mean an explicit zero, which the zero-value defaulting
	// above cannot express.
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay < 0 {
		c.BaseDelay = 0
	}
	if c.PollInterval < 0 {
		c.PollInterval = 0
	}
	if c.MaxPollCycles < 0 {
		c.MaxPollCycles = 0
	}
	if c.CleanCooldown < 0 {
		c.CleanCooldown = 0
	}
	if c.ThrottledCooldown < 0 {
		c.ThrottledCooldown = 0
	}
	return c
}

// Gateway mediates every call to the inference service. The remote rate
// limit is shared across operation types, so one single-flight slot covers
// summarize, tags, translate, and grammar alike.
type Gateway struct {
	cfg       Config
	log       *zap.Logger
	flight    chan struct{}
	cooldowns *cooldownTracker
}

func NewGateway(cfg Config, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		cfg:       cfg.withDefaults(),
		log:       log,
		flight:    make(chan struct{}, 1),
		cooldowns: newCooldownTracker(),
	}
}

// Wire format of the generateContent endpoint: a role-tagged list of text
// parts in, a completion at candidates[0].content.parts[0].text out.
type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// invoke sends one instruction+content request through the single-flight
// slot, retrying rate limits and transport failures with exponential
// backoff. It returns ErrRateLimited when the final failure was a 429 and
// ErrUnavailable for everything else; raw transport errors never escape.
func (g *Gateway) invoke(ctx context.Context, instruction, content string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrUnavailable
	}

	held := g.acquireFlight(ctx)
	if held {
		defer g.releaseFlight()
	}

	delay := g.cfg.BaseDelay
	throttled := false

	for attempt := 0; attempt <= g.cfg.MaxRetries; attempt++ {
		text, status, err := g.post(ctx, instruction, content)
		if err == nil {
			return text, nil
		}
		throttled = status == http.StatusTooManyRequests

		if attempt == g.cfg.MaxRetries {
			g.log.Warn("inference retries exhausted",
				zap.Int("attempts", attempt+1),
				zap.Bool("throttled", throttled),
				zap.Error(err))
			break
		}

		g.log.Debug("retrying inference request",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ErrUnavailable
		}
		delay *= 2
	}

	if throttled {
		return "", ErrRateLimited
	}
	return "", ErrUnavailable
}

// acquireFlight takes the single-flight slot, polling while another request
// is in flight. After MaxPollCycles it gives up and lets the caller proceed
// without the slot so a stuck request cannot starve everyone behind it.
func (g *Gateway) acquireFlight(ctx context.Context) bool {
	select {
	case g.flight <- struct{}{}:
		return true
	default:
	}

	for i := 0; i < g.cfg.MaxPollCycles; i++ {
		select {
		case g.flight <- struct{}{}:
			return true
		case <-time.After(g.cfg.PollInterval):
		case <-ctx.Done():
			return false
		}
	}
	return false
}

func (g *Gateway) releaseFlight() {
	<-g.flight
}

// post performs one HTTP exchange. The returned status is zero when the
// request never reached the service.
func (g *Gateway) post(ctx context.Context, instruction, content string) (string, int, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{
			Role:  "user",
			Parts: []part{{Text: instruction}, {Text: content}},
		}},
	})
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.cfg.BaseURL, g.cfg.Model, g.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, fmt.Errorf("inference service returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", resp.StatusCode, errors.New("response carries no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, resp.StatusCode, nil
}

// CooldownUntil returns the deadline before which new attempts in the
// category are rejected with ErrCooldown. The zero time means no cooldown.
func (g *Gateway) CooldownUntil(cat Category) time.Time {
	return g.cooldowns.until(cat)
}

// CooldownRemaining returns how long the category's cooldown still has to
// run; zero when attempts are allowed.
func (g *Gateway) CooldownRemaining(cat Category) time.Duration {
	return g.cooldowns.remaining(cat)
}

func (g *Gateway) checkCooldown(cat Category) error {
	if g.cooldowns.remaining(cat) > 0 {
		return ErrCooldown
	}
	return nil
}

// settleCooldown arms the category's cooldown after an attempt. A throttled
// outcome earns a longer window than a clean success or failure.
func (g *Gateway) settleCooldown(cat Category, err error) {
	if errors.Is(err, ErrRateLimited) {
		g.cooldowns.set(cat, g.cfg.ThrottledCooldown)
		return
	}
	g.cooldowns.set(cat, g.cfg.CleanCooldown)
}
