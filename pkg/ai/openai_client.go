// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"agroscore/pkg/recommend/types"
	"agroscore/pkg/scoring"
)

type Options struct {
	Retries         int
	BreakerFailures int
	BreakerOpenFor  time.Duration
	HTTPClient      *http.Client
}

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
	cb       *gobreaker.CircuitBreaker
	retries  uint64
}

func NewOpenAI(endpoint, key, model string, opt Options) Client {
	if opt.BreakerFailures < 1 {
		opt.BreakerFailures = 3
	}
	if opt.BreakerOpenFor <= 0 {
		opt.BreakerOpenFor = 30 * time.Second
	}
	if opt.Retries < 0 {
		opt.Retries = 0
	}
	httpc := opt.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 25 * time.Second}
	}
	fails := uint32(opt.BreakerFailures)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "advisory-llm",
		Timeout: opt.BreakerOpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= fails
		},
	})
	return &openAI{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		httpc:    httpc,
		cb:       cb,
		retries:  uint64(opt.Retries),
	}
}

func (c *openAI) Enhance(ctx context.Context, req Request) (*types.Advisory, error) {
	content, err := c.complete(ctx, []map[string]string{
		{"role": "system", "content": "You are an Indian agronomist. Reply ONLY valid JSON matching the requested schema."},
		{"role": "user", "content": renderEnhancePrompt(req)},
	})
	if err != nil {
		return nil, err
	}
	return ExtractAdvisory(content)
}

// complete posts one chat completion through the breaker, retrying transient
// failures until the context deadline.
func (c *openAI) complete(ctx context.Context, messages []map[string]string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": 0.2,
	})
	if err != nil {
		return "", err
	}

	res, err := c.cb.Execute(func() (any, error) {
		var content string
		op := func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.key)
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpc.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return backoff.Permanent(ctx.Err())
				}
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return fmt.Errorf("llm status %d", resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
				return backoff.Permanent(fmt.Errorf("llm status %d: %s", resp.StatusCode, string(b)))
			}

			var out struct {
				Choices []struct {
					Message struct {
						Content string `json:"content"`
					} `json:"message"`
				} `json:"choices"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return backoff.Permanent(fmt.Errorf("decode completion: %w", err))
			}
			if len(out.Choices) == 0 {
				return backoff.Permanent(fmt.Errorf("no choices"))
			}
			content = out.Choices[0].Message.Content
			return nil
		}

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 200 * time.Millisecond
		if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx)); err != nil {
			return nil, err
		}
		return content, nil
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

var localeNames = map[string]string{"en": "English", "hi": "Hindi", "mr": "Marathi"}

func renderEnhancePrompt(req Request) string {
	in := req.Input
	lang := localeNames[in.Locale]
	if lang == "" {
		lang = "English"
	}
	val := func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return scoring.Num(*v)
	}
	weather := "not provided"
	if w := in.Weather; w != nil {
		weather = fmt.Sprintf("temperature %s °C, humidity %s %%, moisture %s %%, wind %s km/h",
			val(w.Temperature), val(w.Humidity), val(w.Moisture), val(w.WindSpeed))
	}
	notes := req.KBNotes
	if len(notes) > 4000 {
		notes = notes[:4000]
	}
	return fmt.Sprintf(`
Review this soil test and give a short crop advisory in %s.
Rules:
- Only reference crops from ALLOWED CROPS by id.
- Action type must be one of irrigation|fertilizer|pesticide|harvesting|storage.
- Priority must be one of low|medium|high|critical.
- Reply with JSON only: {"summary":"...","cropNotes":[{"cropId":"...","note":"..."}],"actions":[{"type":"...","description":"...","priority":"...","timeline":"...","estimatedCost":0}]}

SOIL: pH %s, nitrogen %s, phosphorus %s, potassium %s, organic matter %s
WEATHER: %s
LOCATION: %s

ALLOWED CROPS: %s

KB NOTES:
%s
`, lang, val(in.Soil.Ph), val(in.Soil.Nitrogen), val(in.Soil.Phosphorus), val(in.Soil.Potassium),
		val(in.Soil.OrganicMatter), weather, in.Location, strings.Join(req.CropIDs, ", "), notes)
}
