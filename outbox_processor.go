package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/models"
	"github.com/TinsaeTadesse17/Coffee-Inventory-Management-sub000/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OutboxProcessor materializes outbox rows into Notification and AuditLog
// records. Rows are claimed with a row lock plus a TTL so a crashed worker's
// claims are retried; processing is idempotent via the dedupe key.
type OutboxProcessor struct {
	DB        *gorm.DB
	Logger    *logrus.Logger
	WorkerID  string
	BatchSize int
	Interval  time.Duration
	LockTTL   time.Duration
}

func NewOutboxProcessor(db *gorm.DB, logger *logrus.Logger) *OutboxProcessor {
	return &OutboxProcessor{
		DB:        db,
		Logger:    logger,
		WorkerID:  "outbox-" + time.Now().Format("20060102-150405.000"),
		BatchSize: 50,
		Interval:  2 * time.Second,
		LockTTL:   30 * time.Second,
	}
}

func (p *OutboxProcessor) Run(ctx context.Context) {
	if p == nil || p.DB == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval):
		}
	}
}

func (p *OutboxProcessor) processOnce(ctx context.Context) {
	now := time.Now().UTC()
	staleBefore := now.Add(-p.LockTTL)

	var claimed []models.OutboxMessage
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Where("is_processed = false").
			Where("(locked_at IS NULL OR locked_at <= ?)", staleBefore).
			Order("id ASC").
			Limit(p.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(claimed))
		for _, m := range claimed {
			ids = append(ids, m.ID)
		}
		return tx.Model(&models.OutboxMessage{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"locked_at": now,
				"locked_by": p.WorkerID,
			}).Error
	})
	if err != nil {
		p.Logger.WithField("worker", p.WorkerID).Errorf("outbox claim failed: %v", err)
		return
	}

	for _, msg := range claimed {
		if err := p.handle(ctx, msg); err != nil {
			p.Logger.WithFields(logrus.Fields{
				"worker":    p.WorkerID,
				"outbox_id": msg.ID,
				"kind":      msg.Kind,
			}).Errorf("outbox delivery failed: %v", err)
			errStr := err.Error()
			if len(errStr) > 500 {
				errStr = errStr[:500]
			}
			p.DB.Model(&models.OutboxMessage{}).
				Where("id = ?", msg.ID).
				Updates(map[string]interface{}{
					"attempts":   gorm.Expr("attempts + 1"),
					"last_error": errStr,
					"locked_at":  nil, // release for retry
				})
			continue
		}
		done := time.Now().UTC()
		p.DB.Model(&models.OutboxMessage{}).
			Where("id = ?", msg.ID).
			Updates(map[string]interface{}{
				"is_processed": true,
				"processed_at": done,
				"attempts":     gorm.Expr("attempts + 1"),
			})
	}
}

func (p *OutboxProcessor) handle(ctx context.Context, msg models.OutboxMessage) error {
	switch msg.Kind {
	case models.OutboxNotification:
		var payload service.NotificationPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			return fmt.Errorf("bad payload: %w", err)
		}
		return p.DB.WithContext(ctx).Create(&models.Notification{
			Role:    payload.Role,
			Title:   payload.Title,
			Message: payload.Message,
		}).Error
	case models.OutboxAudit:
		var payload service.AuditPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			return fmt.Errorf("bad payload: %w", err)
		}
		detail, err := json.Marshal(payload.Detail)
		if err != nil {
			return err
		}
		return p.DB.WithContext(ctx).Create(&models.AuditLog{
			ActorID:   payload.ActorID,
			Action:    payload.Action,
			EntityRef: payload.EntityRef,
			Detail:    string(detail),
		}).Error
	default:
		return fmt.Errorf("unknown outbox kind %q", msg.Kind)
	}
}
