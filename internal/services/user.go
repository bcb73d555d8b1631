package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
  ApplyPlan(ctx context.Context, userID uuid.UUID, plan types.PlanLevel) (*types.User, error)
  SetAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error)
}

type userService struct {
  db            *gorm.DB
  log           *logger.Logger
  userRepo      repos.UserRepo
  avatarService AvatarService
  notifier      RunNotifier
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService, notifier RunNotifier) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{
    db:            db,
    log:           serviceLog,
    userRepo:      userRepo,
    avatarService: avatarService,
    notifier:      notifier,
  }
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  user, err := us.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to load user: %w", err)
  }
  return user, nil
}

// ApplyPlan moves the user to the given tier and resets the balance to the
// tier's full monthly allowance. Unspent credits do not carry over between
// tiers.
func (us *userService) ApplyPlan(ctx context.Context, userID uuid.UUID, plan types.PlanLevel) (*types.User, error) {
  limits, ok := types.PlanLimits[plan]
  if !ok {
    return nil, fmt.Errorf("unknown plan %q", plan)
  }

  var updated *types.User
  err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, uErr := us.userRepo.GetByID(ctx, tx, userID)
    if uErr != nil {
      return fmt.Errorf("failed to load user: %w", uErr)
    }
    next := time.Now().AddDate(0, 1, 0)
    user.PlanLevel = plan
    user.Points = limits.MonthlyCredits
    user.SubscriptionStatus = types.SubscriptionActive
    user.NextBillingDate = &next
    if sErr := us.userRepo.Update(ctx, tx, user); sErr != nil {
      return fmt.Errorf("failed to save user: %w", sErr)
    }
    updated = user
    return nil
  })
  if err != nil {
    return nil, err
  }

  if us.notifier != nil {
    us.notifier.CreditsChanged(userID, updated.Points)
  }
  return updated, nil
}

func (us *userService) SetAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error) {
  user, uErr := us.userRepo.GetByID(ctx, nil, userID)
  if uErr != nil {
    return nil, fmt.Errorf("failed to load user: %w", uErr)
  }
  if aErr := us.avatarService.SetAvatarFromImage(user, raw); aErr != nil {
    return nil, aErr
  }
  if sErr := us.userRepo.Update(ctx, nil, user); sErr != nil {
    return nil, fmt.Errorf("failed to save user: %w", sErr)
  }
  return user, nil
}
