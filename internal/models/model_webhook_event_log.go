package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookEventLogStatus string

const (
	WebhookEventLogStatusReceived  WebhookEventLogStatus = "received"
	WebhookEventLogStatusProcessed WebhookEventLogStatus = "processed"
	WebhookEventLogStatusIgnored   WebhookEventLogStatus = "ignored"
	WebhookEventLogStatusRejected  WebhookEventLogStatus = "rejected"
	WebhookEventLogStatusFailed    WebhookEventLogStatus = "failed"
)

// WebhookEventLog is the audit trail of webhook deliveries. Rows are written
// fire-and-forget off the request path; the table has no effect on processing
// decisions.
type WebhookEventLog struct {
	ID          string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider    string                `gorm:"column:provider;type:varchar(32);not null" json:"provider"`
	EventType   string                `gorm:"column:event_type;type:varchar(64)" json:"event_type"`
	PaymentID   string                `gorm:"column:payment_id;type:varchar(128);index" json:"payment_id"`
	UserID      *string               `gorm:"column:user_id;type:varchar(64)" json:"user_id"`
	TraceID     string                `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Payload     datatypes.JSON        `gorm:"column:payload;type:jsonb" json:"payload"`
	Result      *datatypes.JSON       `gorm:"column:result;type:jsonb" json:"result"`
	Status      WebhookEventLogStatus `gorm:"column:status;type:varchar(16);not null" json:"status"`
	ReceivedAt  time.Time             `gorm:"column:received_at" json:"received_at"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (WebhookEventLog) TableName() string { return "webhook_event_log" }
