package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact delivery statuses.
const (
	ContactPending   = "PENDING"
	ContactProcessed = "PROCESSED"
	ContactFailed    = "FAILED"
)

// Contact is a submitted lead, created only after the user reviewed and
// explicitly confirmed the extracted draft. It is never mutated afterwards;
// the only lifecycle operation is deletion.
type Contact struct {
	Id          string `json:"id" gorm:"primaryKey"`
	WorkspaceId string `json:"workspace_id" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Phone       string `json:"phone" gorm:"not null"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	// Notes carries the raw transcript as a fallback for fields the
	// heuristics missed.
	Notes  string `json:"notes" gorm:"type:text"`
	Status string `json:"status" gorm:"type:VARCHAR(10);not null;default:PENDING"`
	// DeliveryStatus and DeliveryVariant record what the CRM webhook
	// answered and which request shape it accepted.
	DeliveryStatus  int       `json:"delivery_status"`
	DeliveryVariant string    `json:"delivery_variant"`
	CreatedAt       time.Time `json:"created_at"`
}

func (contact *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	contact.Id = uuid.NewString()
	return
}
