package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"agroscore/pkg/recommend/types"
)

var errInvalidContent = errors.New("invalid advisory content")

var fenceRX = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractAdvisory pulls the JSON advisory out of free model text. It tries the
// whole reply, then a fenced block, then the outermost {...} span.
func ExtractAdvisory(content string) (*types.Advisory, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: empty reply", errInvalidContent)
	}
	candidates := []string{content}
	if m := fenceRX.FindStringSubmatch(content); len(m) == 2 {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if i, j := strings.Index(content, "{"), strings.LastIndex(content, "}"); i >= 0 && j > i {
		candidates = append(candidates, content[i:j+1])
	}

	var lastErr error
	for _, c := range candidates {
		var a types.Advisory
		if err := json.Unmarshal([]byte(c), &a); err != nil {
			lastErr = err
			continue
		}
		a.Summary = strings.TrimSpace(a.Summary)
		for i := range a.Actions {
			a.Actions[i].Type = types.ActionType(strings.ToLower(strings.TrimSpace(string(a.Actions[i].Type))))
			a.Actions[i].Priority = types.Severity(strings.ToLower(strings.TrimSpace(string(a.Actions[i].Priority))))
		}
		for i := range a.CropNotes {
			a.CropNotes[i].CropID = strings.ToLower(strings.TrimSpace(a.CropNotes[i].CropID))
		}
		return &a, nil
	}
	return nil, fmt.Errorf("%w: %v", errInvalidContent, lastErr)
}
