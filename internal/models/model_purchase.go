package models

import (
	"fmt"
	"time"

	"github.com/agentprompts/backend/pkg/types"
)

// Purchase is one paid order. PaymentID is the provider checkout/order ID and
// doubles as the idempotency key: the unique index plus insert-or-fetch in the
// purchase service guarantee at most one row per delivery, however many times
// the provider redelivers the webhook.
//
// UserID is nullable: guest checkouts have no account at payment time and are
// attached later through the link flow. UserID is never reassigned outside
// that flow.
type Purchase struct {
	ID          string            `gorm:"column:id;primary_key;type:uuid;index:idx_purchase_user_id_id,priority:2,sort:desc" json:"id"`
	PaymentID   string            `gorm:"column:payment_id;type:varchar(128);not null;uniqueIndex:unique_payment_id" json:"payment_id"`
	UserID      *string           `gorm:"column:user_id;type:varchar(64);index:idx_purchase_user_id_id,priority:1" json:"user_id"`
	ProductType types.ProductType `gorm:"column:product_type;type:varchar(32);not null" json:"product_type"`
	// ProductID is set for individual-stack purchases only.
	ProductID       *string               `gorm:"column:product_id;type:varchar(64)" json:"product_id"`
	AmountCents     int64                 `gorm:"column:amount_cents;type:bigint;not null" json:"amount_cents"`
	Currency        string                `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	PaymentProvider types.PaymentProvider `gorm:"column:payment_provider;type:varchar(32);not null" json:"payment_provider"`
	Status          types.PurchaseStatus  `gorm:"column:status;type:varchar(16);not null" json:"status"`
	CustomerEmail   string                `gorm:"column:customer_email;type:varchar(255)" json:"customer_email"`
	PurchasedAt     time.Time             `gorm:"column:purchased_at;not null" json:"purchased_at"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (Purchase) TableName() string { return "purchase" }

// Amount renders the stored minor-unit amount in major currency units,
// e.g. 1900 -> "19.00". Integer math only; cents never round-trip through
// floating point.
func (p *Purchase) Amount() string {
	cents := p.AmountCents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (p *Purchase) OwnedBy(userID string) bool {
	return p != nil && p.UserID != nil && *p.UserID == userID
}
