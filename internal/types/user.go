package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

type PlanLevel string

const (
  PlanFree    PlanLevel = "FREE"
  PlanPro     PlanLevel = "PRO"
  PlanProPlus PlanLevel = "PRO_PLUS"
)

type SubscriptionStatus string

const (
  SubscriptionActive   SubscriptionStatus = "active"
  SubscriptionInactive SubscriptionStatus = "inactive"
  SubscriptionPastDue  SubscriptionStatus = "past_due"
)

type User struct {
  ID                  uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
  Email               string              `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password            string              `gorm:"not null;column:password" json:"-"`
  Name                string              `gorm:"not null;column:name" json:"name"`
  Avatar              string              `gorm:"column:avatar" json:"avatar"`
  Points              int                 `gorm:"not null;default:0;column:points" json:"points"`
  PlanLevel           PlanLevel           `gorm:"not null;default:'FREE';column:plan_level" json:"plan_level"`
  SubscriptionStatus  SubscriptionStatus  `gorm:"not null;default:'inactive';column:subscription_status" json:"subscription_status"`
  NextBillingDate     *time.Time          `gorm:"column:next_billing_date" json:"next_billing_date,omitempty"`
  CreatedAt           time.Time           `gorm:"not null" json:"created_at"`
  UpdatedAt           time.Time           `gorm:"not null" json:"updated_at"`
  DeletedAt           gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (User) TableName() string {
  return "user"
}
