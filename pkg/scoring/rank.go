package scoring

import (
	"sort"

	"agroscore/pkg/recommend/types"
)

// TopN is the number of crops a report recommends.
const TopN = 10

// Rank orders crops by score, highest first, and assigns ranks from 1.
// The sort is stable, so equal scores keep their input (catalog) order.
// limit <= 0 keeps every crop.
func Rank(crops []types.ScoredCrop, limit int) []types.ScoredCrop {
	out := make([]types.ScoredCrop, len(crops))
	copy(out, crops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
