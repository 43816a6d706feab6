package entities

import "time"

// KBDocument is an agronomy note source (pasted text or a fetched page).
type KBDocument struct {
	DocID     uint   `gorm:"primaryKey" json:"doc_id"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url"`
	Tags      string `json:"tags"` // comma separated, e.g. "onion,rabi,maharashtra"
	CreatedAt time.Time
}

type KBChunk struct {
	ChunkID   uint   `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint   `gorm:"index" json:"doc_id"`
	Ord       int    `json:"ord"`
	Text      string `json:"text"`
	Embedding []byte `json:"-"` // little-endian float32s, empty when no embedder
	CreatedAt time.Time
}
