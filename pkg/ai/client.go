// pkg/ai/client.go

package ai

import (
	"context"

	"agroscore/pkg/recommend/types"
)

// Request is what the advisory layer sees: the normalized input only.
// It runs beside the deterministic scorer, never after it.
type Request struct {
	Input   types.Input
	CropIDs []string // catalog ids the model may reference
	KBNotes string   // optional agronomy notes for context
}

type Client interface {
	// Enhance asks a generative model for a structured advisory in the
	// request locale. Any error means "no advisory".
	Enhance(ctx context.Context, req Request) (*types.Advisory, error)
}
