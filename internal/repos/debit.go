package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

// debitPoints takes points from the user's balance inside the caller's
// transaction, only when the balance covers the cost. Zero rows affected
// means insufficient funds; rolling back the surrounding transaction is
// the caller's job.
func debitPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) error {
  res := tx.WithContext(ctx).
    Model(&types.User{}).
    Where("id = ? AND points >= ?", userID, points).
    UpdateColumn("points", gorm.Expr("points - ?", points))
  if res.Error != nil {
    return res.Error
  }
  if res.RowsAffected == 0 {
    return ErrInsufficientPoints
  }
  return nil
}
