package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type CohortRepo interface {
  // CreateCharging inserts the cohort and debits cost credits from the
  // owner in one transaction (see SessionRepo.CreateCharging).
  CreateCharging(ctx context.Context, cohort *types.AudienceCohort, cost int) (*types.AudienceCohort, error)
  Update(ctx context.Context, tx *gorm.DB, cohort *types.AudienceCohort) error
  GetByID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (*types.AudienceCohort, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.AudienceCohort, error)
  Delete(ctx context.Context, tx *gorm.DB, ownerID, cohortID uuid.UUID) error
}

type cohortRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCohortRepo(db *gorm.DB, baseLog *logger.Logger) CohortRepo {
  repoLog := baseLog.With("repo", "CohortRepo")
  return &cohortRepo{db: db, log: repoLog}
}

func (cr *cohortRepo) CreateCharging(ctx context.Context, cohort *types.AudienceCohort, cost int) (*types.AudienceCohort, error) {
  err := cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := debitPoints(ctx, tx, cohort.OwnerUserID, cost); err != nil {
      return err
    }
    return tx.Create(cohort).Error
  })
  if err != nil {
    return nil, err
  }
  return cohort, nil
}

func (cr *cohortRepo) Update(ctx context.Context, tx *gorm.DB, cohort *types.AudienceCohort) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).Save(cohort).Error
}

func (cr *cohortRepo) GetByID(ctx context.Context, tx *gorm.DB, cohortID uuid.UUID) (*types.AudienceCohort, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var result types.AudienceCohort
  if err := transaction.WithContext(ctx).
    Where("id = ?", cohortID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *cohortRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.AudienceCohort, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  var results []*types.AudienceCohort
  if err := transaction.WithContext(ctx).
    Where("owner_user_id = ? OR is_official = ?", ownerID, true).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (cr *cohortRepo) Delete(ctx context.Context, tx *gorm.DB, ownerID, cohortID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }
  return transaction.WithContext(ctx).
    Where("id = ? AND owner_user_id = ?", cohortID, ownerID).
    Delete(&types.AudienceCohort{}).Error
}
