package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type ArticleRepo interface {
  List(ctx context.Context, tx *gorm.DB) ([]*types.Article, error)
}

type articleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewArticleRepo(db *gorm.DB, baseLog *logger.Logger) ArticleRepo {
  repoLog := baseLog.With("repo", "ArticleRepo")
  return &articleRepo{db: db, log: repoLog}
}

func (ar *articleRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Article, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  var results []*types.Article
  if err := transaction.WithContext(ctx).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
