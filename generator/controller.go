package generator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"hiphop_lyrics_generator/config"
)

var (
	ErrPromptEmpty = errors.New("prompt is empty")
	ErrInFlight    = errors.New("a generation is already in progress")
)

// Controller owns the state of one lyrics form and drives the provider call.
// At most one request is outstanding per controller.
type Controller struct {
	llm    LLMClient
	cred   config.Credential
	logger zerolog.Logger

	busy *semaphore.Weighted

	mu    sync.Mutex
	state State
}

// NewController wires a controller. llm may be nil only when the credential is
// not configured, since no call is ever made in that case.
func NewController(llm LLMClient, cred config.Credential, logger zerolog.Logger) (*Controller, error) {
	if llm == nil && cred.Configured() {
		return nil, errors.New("llm client is required")
	}
	return &Controller{
		llm:    llm,
		cred:   cred,
		logger: logger,
		busy:   semaphore.NewWeighted(1),
	}, nil
}

// Configured reports whether generation is possible at all.
func (c *Controller) Configured() bool {
	return c.cred.Configured()
}

// SetPrompt records the current prompt text.
func (c *Controller) SetPrompt(prompt string) {
	c.mu.Lock()
	c.state.Prompt = prompt
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit mirrors the submit button: disabled for blank prompts, while a
// request is in flight and when the credential is unconfigured.
func (c *Controller) CanSubmit(prompt string) bool {
	if strings.TrimSpace(prompt) == "" || !c.cred.Configured() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.InFlight
}

// Submit runs one generation attempt for prompt.
//
// A non-nil error means the submission was not accepted and the state is
// unchanged apart from the prompt. Otherwise exactly one Outcome is applied:
// Success sets Result, Empty and TransportError set Error and leave a previous
// Result in place, Blocked sets the credential guidance without any call.
//
// The provider call ignores cancellation of ctx: once issued it runs to
// completion or failure.
func (c *Controller) Submit(ctx context.Context, prompt string) (Outcome, error) {
	c.SetPrompt(prompt)
	if strings.TrimSpace(prompt) == "" {
		return OutcomeRejected, ErrPromptEmpty
	}
	if !c.cred.Configured() {
		c.setError(MsgMissingCredential)
		c.logger.Warn().Msg("generation blocked: api key not configured")
		return OutcomeBlocked, nil
	}
	if !c.busy.TryAcquire(1) {
		return OutcomeRejected, ErrInFlight
	}
	defer c.busy.Release(1)

	c.mu.Lock()
	c.state.InFlight = true
	c.state.Error = ""
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.state.InFlight = false
		c.mu.Unlock()
	}()

	log := c.logger.With().Str("attempt", uuid.NewString()).Logger()
	log.Debug().Int("prompt_len", len(prompt)).Msg("generation started")

	text, err := c.llm.Complete(context.WithoutCancel(ctx), BuildLyricsPrompt(prompt))
	switch {
	case err == nil && text != "":
		rendered, rerr := RenderLyrics(text)
		if rerr != nil {
			log.Warn().Err(rerr).Msg("render lyrics as markdown failed; using plain text")
		}
		c.mu.Lock()
		c.state.Result = text
		c.state.ResultHTML = rendered
		c.mu.Unlock()
		log.Info().Int("result_len", len(text)).Msg("generation succeeded")
		return OutcomeSuccess, nil
	case err == nil || errors.Is(err, ErrNoChoices):
		c.setError(MsgEmptyResult)
		log.Warn().Msg("generation returned no text")
		return OutcomeEmpty, nil
	default:
		c.setError(MsgTransport)
		log.Error().Err(err).Msg("generation failed")
		return OutcomeTransportError, nil
	}
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.state.Error = msg
	c.mu.Unlock()
}
