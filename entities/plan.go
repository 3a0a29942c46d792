package entities

import "time"

// PlanRecord keeps a generated plan for the history endpoints. The transcript
// itself is not stored, only its size and where it came from.
type PlanRecord struct {
	ID              uint       `gorm:"primaryKey" json:"-"`
	PublicID        string     `gorm:"uniqueIndex;size:36" json:"id"`
	Skills          []string   `gorm:"type:text;serializer:json" json:"skills"`
	Source          string     `json:"source"` // text|file|url
	SourceName      string     `json:"source_name,omitempty"`
	TranscriptChars int        `json:"transcript_chars"`
	Model           string     `json:"model"`
	Plan            LessonPlan `gorm:"type:text;serializer:json" json:"plan"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
}
