package models

import (
	"time"

	"gorm.io/gorm"
)

// Outbox message kinds.
const (
	OutboxNotification = "NOTIFICATION"
	OutboxAudit        = "AUDIT"
)

// OutboxMessage is appended inside the same transaction as the business write
// it describes. A background processor materializes it into a Notification or
// AuditLog row; delivery failures leave the row unprocessed for retry, so a
// collaborator failure can never fail the primary operation.
type OutboxMessage struct {
	gorm.Model
	DedupeKey   string     `json:"dedupe_key" gorm:"uniqueIndex;size:40"`
	Kind        string     `json:"kind" gorm:"size:20;index"`
	Payload     string     `json:"payload" gorm:"type:text"`
	IsProcessed bool       `json:"is_processed" gorm:"default:false;index"`
	Attempts    int        `json:"attempts" gorm:"default:0"`
	LastError   *string    `json:"last_error" gorm:"size:500"`
	LockedAt    *time.Time `json:"locked_at"`
	LockedBy    *string    `json:"locked_by" gorm:"size:60"`
	ProcessedAt *time.Time `json:"processed_at"`
}

// Notification is a materialized in-app message for every user holding Role.
type Notification struct {
	gorm.Model
	Role    string `json:"role" gorm:"size:40;index"`
	UserID  *uint  `json:"user_id" gorm:"index"`
	Title   string `json:"title" gorm:"size:180"`
	Message string `json:"message" gorm:"size:500"`
	IsRead  bool   `json:"is_read" gorm:"default:false"`
}

// AuditLog records who did what, with the full request payload as JSON.
type AuditLog struct {
	gorm.Model
	ActorID   uint   `json:"actor_id" gorm:"index"`
	Action    string `json:"action" gorm:"size:80;index"`
	EntityRef string `json:"entity_ref" gorm:"size:80"`
	Detail    string `json:"detail" gorm:"type:text"`
}
