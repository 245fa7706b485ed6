package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"leafline/imaging"
	"leafline/logging"
)

// OrchestratorConfig carries the model hints and retry tuning.
type OrchestratorConfig struct {
	Model         string
	FallbackModel string // cheaper model used by the degraded growth-analysis retry
	MaxAttempts   int
	BackoffBase   time.Duration
}

// Orchestrator builds prompts, invokes the inference endpoint, applies the
// retry/backoff/model-degradation policy, and returns validated results.
type Orchestrator struct {
	client ChatCompleter
	log    *logging.Logger
	cfg    OrchestratorConfig

	// sleep is swapped out by tests so the backoff policy is testable
	// without real waiting.
	sleep func(time.Duration)
}

func NewOrchestrator(client ChatCompleter, cfg OrchestratorConfig, log *logging.Logger) *Orchestrator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = "gpt-4o-mini"
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = time.Second
	}
	return &Orchestrator{
		client: client,
		log:    log.With("service", "AdvisoryOrchestrator"),
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

type outcomeState int

const (
	outcomeSuccess outcomeState = iota
	outcomeRetry
	outcomeFatal
)

// attemptOutcome is what one attempt produced. The driver loop interprets
// it; the attempt itself never sleeps or recurses.
type attemptOutcome struct {
	state       outcomeState
	result      Result
	delay       time.Duration // server-provided retry hint; 0 means none
	useBackoff  bool          // no hint: driver applies exponential backoff
	degradeNext bool
	err         error
}

/// Execute runs the full pipeline for one task: prompt build, image ingest,
// inference call with the task's token budget, parse, validate. Up to
// MaxAttempts attempts; rate limiting sleeps and retries with an unchanged
// task, a growth-analysis image failure degrades the second attempt to a
// text-only prompt on the cheaper model. Everything else fails immediately.
func (o *Orchestrator) Execute(ctx context.Context, task Task) (Result, error) {
	degraded := false
	var lastErr error

	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		out := o.attempt(ctx, task, degraded)
		switch out.state {
		case outcomeSuccess:
			return out.result, nil
		case outcomeFatal:
			return nil, out.err
		case outcomeRetry:
			lastErr = out.err
			if out.degradeNext {
				degraded = true
			}
			if attempt == o.cfg.MaxAttempts {
				break
			}
			delay := out.delay
			if delay == 0 && out.useBackoff {
				delay = o.cfg.BackoffBase << (attempt - 1)
			}
			o.log.Warn("advisory attempt failed, retrying",
				"task", string(task.Kind),
				"attempt", attempt,
				"max_attempts", o.cfg.MaxAttempts,
				"sleep", delay.String(),
				"degraded", degraded,
				"error", out.err.Error(),
			)
			if delay > 0 {
				o.sleep(delay)
			}
		}
	}

	if lastErr == nil {
		lastErr = ErrNoResponse
	}
	return nil, lastErr
}

// attempt performs a single try and reports the outcome.
func (o *Orchestrator) attempt(ctx context.Context, task Task, degraded bool) attemptOutcome {
	var images []string
	if !degraded {
		for _, ref := range task.Images {
			normalized := imaging.ValidateOrEmpty(ref)
			if normalized == "" {
				if task.Kind == KindGrowthAnalysis {
					// Multi-image comparison degrades to a text-only
					// attempt instead of failing the whole call.
					return attemptOutcome{
						state:       outcomeRetry,
						degradeNext: true,
						err:         fmt.Errorf("%w: unusable reference for %s", ErrImageFormat, task.Kind),
					}
				}
				return attemptOutcome{
					state: outcomeFatal,
					err:   fmt.Errorf("%w: unusable reference for %s", ErrImageFormat, task.Kind),
				}
			}
			images = append(images, normalized)
		}
	}

	system, user := buildPrompt(task, degraded)
	model := o.cfg.Model
	budget := budgetFor(task.Kind)
	if degraded {
		model = o.cfg.FallbackModel
		budget /= 2
	}

	raw, err := o.client.Complete(ctx, CompletionRequest{
		Model:     model,
		System:    system,
		Prompt:    user,
		Images:    images,
		MaxTokens: budget,
	})
	if err != nil {
		return o.classify(err)
	}

	parsed, err := parsePayload(raw)
	if err != nil {
		return attemptOutcome{state: outcomeFatal, err: err}
	}

	result, err := validateResult(task.Kind, parsed)
	if err != nil {
		return attemptOutcome{state: outcomeFatal, err: err}
	}
	return attemptOutcome{state: outcomeSuccess, result: result}
}

// classify sorts an inference-call error into the retry policy: rate limits
// are retryable with the server hint or exponential backoff, everything else
// is surfaced immediately.
func (o *Orchestrator) classify(err error) attemptOutcome {
	var he *HTTPError
	if errors.As(err, &he) {
		if he.RateLimited() {
			return attemptOutcome{
				state:      outcomeRetry,
				delay:      he.RetryAfter,
				useBackoff: he.RetryAfter == 0,
				err:        fmt.Errorf("%w: %v", ErrRateLimitExhausted, err),
			}
		}
		return attemptOutcome{
			state: outcomeFatal,
			err:   fmt.Errorf("%w: %v", ErrServiceUnavailable, err),
		}
	}
	if errors.Is(err, ErrNoResponse) || errors.Is(err, ErrEmptyContent) || errors.Is(err, ErrServiceUnavailable) {
		return attemptOutcome{state: outcomeFatal, err: err}
	}
	return attemptOutcome{state: outcomeFatal, err: fmt.Errorf("%w: %v", ErrServiceUnavailable, err)}
}

// parsePayload turns the raw textual reply into a JSON object, tolerating
// the markdown code fences these services like to wrap JSON in.
func parsePayload(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return obj, nil
}
