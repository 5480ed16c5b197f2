package service

import (
	"encoding/json"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPayload is the outbox body for an in-app notification fanned
// out to every active user holding Role.
type NotificationPayload struct {
	Role    string `json:"role"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// AuditPayload is the outbox body for one audit-trail entry.
type AuditPayload struct {
	ActorID   uint   `json:"actor_id"`
	Action    string `json:"action"`
	EntityRef string `json:"entity_ref"`
	Detail    any    `json:"detail"`
}

// EnqueueNotification appends a NOTIFICATION outbox row on tx. Call inside the
// business transaction so the message commits (or rolls back) with it.
func EnqueueNotification(tx *gorm.DB, role, title, message string) error {
	body, err := json.Marshal(NotificationPayload{Role: role, Title: title, Message: message})
	if err != nil {
		return err
	}
	return tx.Create(&models.OutboxMessage{
		DedupeKey: uuid.NewString(),
		Kind:      models.OutboxNotification,
		Payload:   string(body),
	}).Error
}

// EnqueueAudit appends an AUDIT outbox row on tx.
func EnqueueAudit(tx *gorm.DB, actorID uint, action, entityRef string, detail any) error {
	body, err := json.Marshal(AuditPayload{ActorID: actorID, Action: action, EntityRef: entityRef, Detail: detail})
	if err != nil {
		return err
	}
	return tx.Create(&models.OutboxMessage{
		DedupeKey: uuid.NewString(),
		Kind:      models.OutboxAudit,
		Payload:   string(body),
	}).Error
}
