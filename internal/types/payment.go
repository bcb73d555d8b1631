package types

import (
  "time"
  "github.com/google/uuid"
)

type PaymentStatus string

const (
  PaymentCompleted PaymentStatus = "COMPLETED"
  PaymentPending   PaymentStatus = "PENDING"
  PaymentFailed    PaymentStatus = "FAILED"
)

type PaymentTransaction struct {
  ID        uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  OrderID   string        `gorm:"not null;uniqueIndex;column:order_id" json:"order_id"`
  AmountUSD int           `gorm:"not null;column:amount_usd" json:"amount_usd"`
  Currency  string        `gorm:"not null;default:'USD';column:currency" json:"currency"`
  Status    PaymentStatus `gorm:"not null;column:status" json:"status"`
  PlanID    PlanLevel     `gorm:"not null;column:plan_id" json:"plan_id"`
  CreatedAt time.Time     `gorm:"not null" json:"created_at"`
}

func (PaymentTransaction) TableName() string {
  return "payment_transaction"
}
