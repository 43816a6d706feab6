package climate

import (
	"time"

	"agroscore/pkg/recommend/types"
)

// SeasonFor maps a calendar month to the Indian cropping season:
// June-October Kharif, November-March Rabi, April-May Zaid.
func SeasonFor(m time.Month) types.Season {
	switch {
	case m >= time.June && m <= time.October:
		return types.Kharif
	case m >= time.November || m <= time.March:
		return types.Rabi
	default:
		return types.Zaid
	}
}

// InSeason reports whether a crop of season s can be sown in current.
func InSeason(s, current types.Season) bool {
	return s == types.YearRound || s == current
}
