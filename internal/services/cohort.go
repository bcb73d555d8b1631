package services

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "strings"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type CohortService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.AudienceCohort, error)
  Get(ctx context.Context, userID, cohortID uuid.UUID) (*types.AudienceCohort, error)
  Generate(ctx context.Context, userID uuid.UUID, seed CohortSeed) (*types.AudienceCohort, error)
  Delete(ctx context.Context, userID, cohortID uuid.UUID) error
}

type cohortService struct {
  db         *gorm.DB
  log        *logger.Logger
  cohortRepo repos.CohortRepo
  userRepo   repos.UserRepo
  simulation SimulationClient
  notifier   RunNotifier
}

func NewCohortService(
  db *gorm.DB,
  log *logger.Logger,
  cohortRepo repos.CohortRepo,
  userRepo repos.UserRepo,
  simulation SimulationClient,
  notifier RunNotifier,
) CohortService {
  serviceLog := log.With("service", "CohortService")
  return &cohortService{
    db:         db,
    log:        serviceLog,
    cohortRepo: cohortRepo,
    userRepo:   userRepo,
    simulation: simulation,
    notifier:   notifier,
  }
}

// List returns the user's own cohorts plus the official starter library.
func (cs *cohortService) List(ctx context.Context, userID uuid.UUID) ([]*types.AudienceCohort, error) {
  cohorts, err := cs.cohortRepo.ListByOwner(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to list cohorts: %w", err)
  }
  return cohorts, nil
}

func (cs *cohortService) Get(ctx context.Context, userID, cohortID uuid.UUID) (*types.AudienceCohort, error) {
  cohort, err := cs.cohortRepo.GetByID(ctx, nil, cohortID)
  if err != nil {
    return nil, fmt.Errorf("failed to load cohort: %w", err)
  }
  if cohort.OwnerUserID != userID && !cohort.IsOfficial {
    return nil, apierr.New(http.StatusNotFound, "", fmt.Errorf("cohort not found"))
  }
  return cohort, nil
}

// Generate builds a new cohort with the AI generator. The generation call
// runs before the charge so a model failure costs nothing; the insert and
// the debit then land in one transaction.
func (cs *cohortService) Generate(ctx context.Context, userID uuid.UUID, seed CohortSeed) (*types.AudienceCohort, error) {
  seed.Name = strings.TrimSpace(seed.Name)
  if seed.Name == "" {
    return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("cohort name is required"))
  }
  if seed.Language == "" {
    seed.Language = "en"
  }

  content, gErr := cs.simulation.GenerateCohort(ctx, seed)
  if gErr != nil {
    return nil, fmt.Errorf("cohort generation failed: %w", gErr)
  }

  cohort := &types.AudienceCohort{
    ID:          uuid.New(),
    OwnerUserID: userID,
    Category:    seed.Category,
    Name:        seed.Name,
    Description: seed.Description,
    Language:    seed.Language,
    Tags:        datatypes.NewJSONSlice(content.Tags),
    MarketStats: datatypes.NewJSONSlice(content.MarketStats),
    Personas:    datatypes.NewJSONSlice(content.Personas),
    Archetypes:  datatypes.NewJSONSlice(content.Archetypes),
    GroupOverview: datatypes.NewJSONType(content.GroupOverview),
  }

  if _, cErr := cs.cohortRepo.CreateCharging(ctx, cohort, types.CostCreateCohort); cErr != nil {
    if errors.Is(cErr, repos.ErrInsufficientPoints) {
      return nil, apierr.New(http.StatusPaymentRequired, apierr.CodeInsufficientFunds, cErr)
    }
    return nil, fmt.Errorf("failed to create cohort: %w", cErr)
  }

  if user, uErr := cs.userRepo.GetByID(ctx, nil, userID); uErr == nil && cs.notifier != nil {
    cs.notifier.CreditsChanged(userID, user.Points)
  }
  return cohort, nil
}

func (cs *cohortService) Delete(ctx context.Context, userID, cohortID uuid.UUID) error {
  if err := cs.cohortRepo.Delete(ctx, nil, userID, cohortID); err != nil {
    return fmt.Errorf("failed to delete cohort: %w", err)
  }
  return nil
}
