package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type PaymentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, txn *types.PaymentTransaction) (*types.PaymentTransaction, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PaymentTransaction, error)
}

type paymentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
  repoLog := baseLog.With("repo", "PaymentRepo")
  return &paymentRepo{db: db, log: repoLog}
}

func (pr *paymentRepo) Create(ctx context.Context, tx *gorm.DB, txn *types.PaymentTransaction) (*types.PaymentTransaction, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if err := transaction.WithContext(ctx).Create(txn).Error; err != nil {
    return nil, err
  }
  return txn, nil
}

func (pr *paymentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PaymentTransaction, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.PaymentTransaction
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
