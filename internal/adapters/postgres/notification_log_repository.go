package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kevin07696/payment-reconciler/internal/domain/ports"
)

const insertNotificationLog = `
INSERT INTO gateway_notification_logs
	(id, channel, settlement_method, order_id, status, outcome, reason, payload, received_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// NotificationLogRepository implements ports.NotificationLogger by keeping
// every gateway payload in gateway_notification_logs
type NotificationLogRepository struct {
	db ports.DBPort
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db ports.DBPort) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

// Log inserts one notification entry
func (r *NotificationLogRepository) Log(ctx context.Context, entry ports.NotificationEntry) error {
	payload := []byte("{}")
	if entry.Payload != nil {
		var err error
		payload, err = json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
	}

	_, err := r.db.GetDB().Exec(ctx, insertNotificationLog,
		uuid.New(),
		string(entry.Channel),
		nullText(string(entry.Method)),
		nullText(entry.OrderID),
		nullText(entry.Status),
		string(entry.Outcome),
		nullText(entry.Reason),
		payload,
		entry.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}
