package entities

import "time"

// Measurement is one soil/weather reading taken on a field. Any axis may be
// missing.
type Measurement struct {
	MeasureID     uint      `gorm:"primaryKey" json:"measure_id"`
	FieldID       uint      `gorm:"index" json:"field_id"`
	TakenAt       time.Time `gorm:"index" json:"taken_at"`
	Ph            *float64  `json:"ph"`
	Nitrogen      *float64  `json:"nitrogen"`
	Phosphorus    *float64  `json:"phosphorus"`
	Potassium     *float64  `json:"potassium"`
	OrganicMatter *float64  `json:"organic_matter"`
	Temperature   *float64  `json:"temperature"`
	Humidity      *float64  `json:"humidity"`
	Moisture      *float64  `json:"moisture"`
	WindSpeed     *float64  `json:"wind_speed"`
	Note          string    `json:"note"`
	CreatedAt     time.Time
}
