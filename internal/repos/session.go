package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type SessionRepo interface {
  // CreateCharging inserts the session and debits cost credits from the
  // owner in one transaction. When the owner's balance does not cover the
  // cost nothing is inserted and ErrInsufficientPoints is returned.
  CreateCharging(ctx context.Context, session *types.Session, cost int) (*types.Session, error)
  Update(ctx context.Context, tx *gorm.DB, session *types.Session) error
  GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Session, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Session, error)
}

type sessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
  repoLog := baseLog.With("repo", "SessionRepo")
  return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) CreateCharging(ctx context.Context, session *types.Session, cost int) (*types.Session, error) {
  err := sr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := debitPoints(ctx, tx, session.OwnerUserID, cost); err != nil {
      return err
    }
    return tx.Create(session).Error
  })
  if err != nil {
    return nil, err
  }
  return session, nil
}

func (sr *sessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.Session) error {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  return transaction.WithContext(ctx).Save(session).Error
}

func (sr *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Session, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var result types.Session
  if err := transaction.WithContext(ctx).
    Where("id = ?", sessionID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *sessionRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Session, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.Session
  if err := transaction.WithContext(ctx).
    Where("owner_user_id = ?", ownerID).
    Order("timestamp DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
