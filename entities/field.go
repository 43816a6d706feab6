package entities

import "time"

// Field is a farm plot whose stored readings can be turned into a report.
type Field struct {
	FieldID   uint    `gorm:"primaryKey" json:"field_id"`
	Name      string  `json:"name"`
	Location  string  `json:"location" gorm:"index"` // free text, e.g. "Nashik, Maharashtra"
	AreaAcres float64 `json:"area_acres"`
	SoilType  string  `json:"soil_type"` // black|red|alluvial|laterite|sandy...
	Locale    string  `json:"locale"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
