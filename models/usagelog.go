package models

import (
	"time"

	"gorm.io/datatypes"
)

// Usage log kinds.
const (
	UsageTranscription = "transcription"
	UsageDelivery      = "delivery"
)

// UsageLog records one billable/operational event, scoped to the workspace
// it happened in. Appended best-effort; a failed insert never fails the
// request that produced it.
type UsageLog struct {
	Id          uint   `json:"id" gorm:"primaryKey"`
	WorkspaceId string `json:"workspace_id" gorm:"not null;index"`
	UserId      string `json:"user_id" gorm:"not null"`
	Kind        string `json:"kind" gorm:"type:VARCHAR(20);not null"`
	// Transcription events.
	TranscriptChars       int  `json:"transcript_chars"`
	ExtractedNameAndPhone bool `json:"extracted_name_and_phone"`
	// Delivery events.
	DeliveryStatus int            `json:"delivery_status"`
	Details        datatypes.JSON `json:"details" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
}
