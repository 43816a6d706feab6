// pkg/ai/mock_client.go

package ai

import (
	"context"
	"fmt"

	"agroscore/pkg/recommend/types"
	"agroscore/pkg/scoring"
)

type mockClient struct{}

// NewMock returns a client that answers from the input alone, for development
// without an LLM endpoint. Output depends only on the request.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Enhance(ctx context.Context, req Request) (*types.Advisory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := req.Input.Soil
	adv := &types.Advisory{Summary: "Soil test reviewed (mock advisory)"}
	if s.Ph != nil && s.Nitrogen != nil {
		adv.Summary = fmt.Sprintf("Soil pH %s with nitrogen %s kg/ha (mock advisory)", scoring.Num(*s.Ph), scoring.Num(*s.Nitrogen))
	}
	if s.Nitrogen != nil && *s.Nitrogen < 100 {
		adv.Actions = append(adv.Actions, types.ActionRecommendation{
			Type:        types.Fertilizer,
			Description: "Top-dress nitrogen in two splits",
			Priority:    types.SeverityHigh,
			Timeline:    "Within 2 weeks",
		})
	}
	return adv, nil
}
