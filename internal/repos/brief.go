package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type BriefRepo interface {
  Create(ctx context.Context, tx *gorm.DB, brief *types.MasterBrief) (*types.MasterBrief, error)
  Update(ctx context.Context, tx *gorm.DB, brief *types.MasterBrief) error
  GetByID(ctx context.Context, tx *gorm.DB, briefID uuid.UUID) (*types.MasterBrief, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.MasterBrief, error)
  CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
  Delete(ctx context.Context, tx *gorm.DB, ownerID, briefID uuid.UUID) error
}

type briefRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewBriefRepo(db *gorm.DB, baseLog *logger.Logger) BriefRepo {
  repoLog := baseLog.With("repo", "BriefRepo")
  return &briefRepo{db: db, log: repoLog}
}

func (br *briefRepo) Create(ctx context.Context, tx *gorm.DB, brief *types.MasterBrief) (*types.MasterBrief, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  if err := transaction.WithContext(ctx).Create(brief).Error; err != nil {
    return nil, err
  }
  return brief, nil
}

func (br *briefRepo) Update(ctx context.Context, tx *gorm.DB, brief *types.MasterBrief) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).Save(brief).Error
}

func (br *briefRepo) GetByID(ctx context.Context, tx *gorm.DB, briefID uuid.UUID) (*types.MasterBrief, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var result types.MasterBrief
  if err := transaction.WithContext(ctx).
    Where("id = ?", briefID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (br *briefRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.MasterBrief, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var results []*types.MasterBrief
  if err := transaction.WithContext(ctx).
    Where("owner_user_id = ?", ownerID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (br *briefRepo) CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.MasterBrief{}).
    Where("owner_user_id = ?", ownerID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (br *briefRepo) Delete(ctx context.Context, tx *gorm.DB, ownerID, briefID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = br.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND owner_user_id = ?", briefID, ownerID).
    Delete(&types.MasterBrief{}).Error
}
