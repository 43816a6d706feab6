package service

import (
	"context"

	"agroscore/pkg/recommend/types"
)

type RecommendService interface {
	// ScoreCrops ranks every catalog crop for the sample. No advisory.
	ScoreCrops(soil types.SoilSample, location, locale string) []types.ScoredCrop
	ComputeReport(ctx context.Context, raw types.RawInput) (*types.Report, error)
	ComputeFieldReport(ctx context.Context, fieldID uint, days int) (*types.Report, error)
	SeasonalCrops(weather types.WeatherSnapshot, locale string) []types.SeasonalCrop

	Crops() []types.CropProfile
	Crop(id string) (types.CropProfile, error)
	ResolveLocation(q, locale string) types.LocationAnalysis
}
