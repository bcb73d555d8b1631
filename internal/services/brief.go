package services

import (
  "context"
  "fmt"
  "net/http"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type BriefService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.MasterBrief, error)
  Get(ctx context.Context, userID, briefID uuid.UUID) (*types.MasterBrief, error)
  Create(ctx context.Context, userID uuid.UUID, brief *types.MasterBrief) (*types.MasterBrief, error)
  Update(ctx context.Context, userID uuid.UUID, brief *types.MasterBrief) (*types.MasterBrief, error)
  Delete(ctx context.Context, userID, briefID uuid.UUID) error
}

type briefService struct {
  db        *gorm.DB
  log       *logger.Logger
  briefRepo repos.BriefRepo
  userRepo  repos.UserRepo
}

func NewBriefService(db *gorm.DB, log *logger.Logger, briefRepo repos.BriefRepo, userRepo repos.UserRepo) BriefService {
  serviceLog := log.With("service", "BriefService")
  return &briefService{
    db:        db,
    log:       serviceLog,
    briefRepo: briefRepo,
    userRepo:  userRepo,
  }
}

func (bs *briefService) List(ctx context.Context, userID uuid.UUID) ([]*types.MasterBrief, error) {
  briefs, err := bs.briefRepo.ListByOwner(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to list briefs: %w", err)
  }
  return briefs, nil
}

func (bs *briefService) Get(ctx context.Context, userID, briefID uuid.UUID) (*types.MasterBrief, error) {
  brief, err := bs.briefRepo.GetByID(ctx, nil, briefID)
  if err != nil {
    return nil, fmt.Errorf("failed to load brief: %w", err)
  }
  if brief.OwnerUserID != userID {
    return nil, apierr.New(http.StatusNotFound, "", fmt.Errorf("brief not found"))
  }
  return brief, nil
}

// Create enforces the plan's brief quota. The count check and the insert
// run in one transaction so two concurrent creates cannot both slip under
// the limit.
func (bs *briefService) Create(ctx context.Context, userID uuid.UUID, brief *types.MasterBrief) (*types.MasterBrief, error) {
  brief.Title = strings.TrimSpace(brief.Title)
  if brief.Title == "" {
    return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("brief title is required"))
  }

  err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := bs.userRepo.GetByID(ctx, tx, userID)
    if uErr != nil {
      return fmt.Errorf("failed to load user: %w", uErr)
    }
    limits := types.LimitsFor(user.PlanLevel)

    count, cErr := bs.briefRepo.CountByOwner(ctx, tx, userID)
    if cErr != nil {
      return fmt.Errorf("failed to count briefs: %w", cErr)
    }
    if count >= int64(limits.MaxBriefs) {
      return apierr.New(http.StatusForbidden, apierr.CodePlanLimitReached,
        fmt.Errorf("Your plan allows up to %d Master Briefs.", limits.MaxBriefs))
    }

    brief.ID = uuid.New()
    brief.OwnerUserID = userID
    _, crErr := bs.briefRepo.Create(ctx, tx, brief)
    return crErr
  })
  if err != nil {
    return nil, err
  }
  return brief, nil
}

// Update saves the brief and appends a version entry when the content
// actually changed, so the version history tracks edits rather than saves.
func (bs *briefService) Update(ctx context.Context, userID uuid.UUID, brief *types.MasterBrief) (*types.MasterBrief, error) {
  existing, gErr := bs.briefRepo.GetByID(ctx, nil, brief.ID)
  if gErr != nil {
    return nil, fmt.Errorf("failed to load brief: %w", gErr)
  }
  if existing.OwnerUserID != userID {
    return nil, apierr.New(http.StatusNotFound, "", fmt.Errorf("brief not found"))
  }

  if existing.Content != brief.Content {
    version := types.BriefVersion{
      ID:        uuid.NewString(),
      Label:     fmt.Sprintf("v%d", len(existing.Versions)+1),
      Content:   existing.Content,
      CreatedAt: time.Now().UnixMilli(),
    }
    brief.Versions = append(existing.Versions, version)
  } else {
    brief.Versions = existing.Versions
  }

  brief.OwnerUserID = userID
  brief.CreatedAt = existing.CreatedAt
  if uErr := bs.briefRepo.Update(ctx, nil, brief); uErr != nil {
    return nil, fmt.Errorf("failed to save brief: %w", uErr)
  }
  return brief, nil
}

func (bs *briefService) Delete(ctx context.Context, userID, briefID uuid.UUID) error {
  if err := bs.briefRepo.Delete(ctx, nil, userID, briefID); err != nil {
    return fmt.Errorf("failed to delete brief: %w", err)
  }
  return nil
}
