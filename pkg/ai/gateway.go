package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"agroscore/pkg/recommend/types"
)

// ErrAdvisoryUnavailable wraps every gateway failure. It is logged, never
// returned to report callers.
var ErrAdvisoryUnavailable = errors.New("advisory unavailable")

// Outcome labels reported to the observer.
const (
	OutcomeOK       = "ok"
	OutcomeTimeout  = "timeout"
	OutcomeError    = "error"
	OutcomeInvalid  = "invalid"
	OutcomeDisabled = "disabled"
)

// Gateway runs a Client under a deadline and turns every failure into nil.
type Gateway struct {
	client  Client
	timeout time.Duration
	cropIDs []string
	known   map[string]struct{}
	observe func(outcome string)
}

func NewGateway(c Client, timeout time.Duration, cropIDs []string, observe func(string)) *Gateway {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if observe == nil {
		observe = func(string) {}
	}
	known := make(map[string]struct{}, len(cropIDs))
	for _, id := range cropIDs {
		known[id] = struct{}{}
	}
	return &Gateway{client: c, timeout: timeout, cropIDs: append([]string(nil), cropIDs...), known: known, observe: observe}
}

// Timeout is the deadline the gateway puts on one advisory call.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// Enhance returns a validated advisory, or nil when the client is missing,
// slow, failing, or returns something that does not fit the schema.
func (g *Gateway) Enhance(ctx context.Context, in types.Input, kbNotes string) *types.Advisory {
	if g == nil || g.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	adv, err := g.client.Enhance(ctx, Request{Input: in, CropIDs: g.cropIDs, KBNotes: kbNotes})
	if err == nil {
		err = Validate(adv, g.known)
		if err != nil {
			g.observe(OutcomeInvalid)
			log.Printf("[advisory] %v", fmt.Errorf("%w: %v", ErrAdvisoryUnavailable, err))
			return nil
		}
		adv.Locale = in.Locale
		g.observe(OutcomeOK)
		return adv
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		g.observe(OutcomeTimeout)
	case errors.Is(err, errInvalidContent):
		g.observe(OutcomeInvalid)
	default:
		g.observe(OutcomeError)
	}
	log.Printf("[advisory] %v", fmt.Errorf("%w: %v", ErrAdvisoryUnavailable, err))
	return nil
}

var (
	validActions    = map[types.ActionType]bool{types.Irrigation: true, types.Fertilizer: true, types.Pesticide: true, types.Harvesting: true, types.Storage: true}
	validPriorities = map[types.Severity]bool{types.SeverityLow: true, types.SeverityMedium: true, types.SeverityHigh: true, types.SeverityCritical: true}
)

// Validate checks an extracted advisory against the report schema.
func Validate(a *types.Advisory, knownCrops map[string]struct{}) error {
	if a == nil {
		return fmt.Errorf("%w: empty advisory", errInvalidContent)
	}
	if a.Summary == "" {
		return fmt.Errorf("%w: missing summary", errInvalidContent)
	}
	for _, n := range a.CropNotes {
		if _, ok := knownCrops[n.CropID]; !ok {
			return fmt.Errorf("%w: unknown crop %q", errInvalidContent, n.CropID)
		}
	}
	for _, act := range a.Actions {
		if !validActions[act.Type] {
			return fmt.Errorf("%w: action type %q", errInvalidContent, act.Type)
		}
		if !validPriorities[act.Priority] {
			return fmt.Errorf("%w: action priority %q", errInvalidContent, act.Priority)
		}
		if act.EstimatedCost < 0 {
			return fmt.Errorf("%w: negative cost", errInvalidContent)
		}
	}
	return nil
}
