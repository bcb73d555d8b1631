package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/simucrowd/simucrowd-backend/internal/experiment"
	"github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/repos"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

type RunService interface {
	Launch(ctx context.Context, userID uuid.UUID, cfg experiment.Config) (*types.Session, error)
}

type runService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.SessionRepo
	userRepo    repos.UserRepo
	simulation  SimulationClient
	notifier    RunNotifier
}

func NewRunService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	userRepo repos.UserRepo,
	simulation SimulationClient,
	notifier RunNotifier,
) RunService {
	return &runService{
		db:          db,
		log:         log.With("service", "RunService"),
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		simulation:  simulation,
		notifier:    notifier,
	}
}

// Launch runs one focus-group simulation end to end. The session row is
// created and the run cost debited in one transaction BEFORE the model is
// called, so a crash mid-simulation can never produce an uncharged result.
// If the simulation then fails the charged session is kept with an empty
// analysis list as the audit record of the spent credits.
func (rs *runService) Launch(ctx context.Context, userID uuid.UUID, cfg experiment.Config) (*types.Session, error) {
	if cfg.Template == nil || cfg.Cohort == nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("experiment configuration incomplete"))
	}
	user, err := rs.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	// Advisory only; the balance can still move before the charge lands.
	// CreateCharging below re-checks inside the debit transaction.
	if user.Points < types.CostRunSimulation {
		return nil, apierr.New(http.StatusPaymentRequired, apierr.CodeInsufficientFunds,
			fmt.Errorf("a simulation run costs %d credits, balance is %d", types.CostRunSimulation, user.Points))
	}
	if cfg.ActiveSnapshot == nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("No Brief Snapshot selected."))
	}
	snapshot := *cfg.ActiveSnapshot
	cohort := *cfg.Cohort

	session := &types.Session{
		ID:             uuid.New(),
		OwnerUserID:    userID,
		Timestamp:      time.Now().UnixMilli(),
		CohortID:       cohort.ID,
		CohortName:     cohort.Name,
		CohortLanguage: cohort.Language,
		Personas:       cohort.Personas,
		Analyses:       datatypes.JSONSlice[types.AnalysisRecord]{},
		TemplateID:     cfg.Template.ID,
		TopicID:        snapshot.SourceBriefID,
		TopicTitle:     snapshot.FrozenTitle,
	}

	if _, err := rs.sessionRepo.CreateCharging(ctx, session, types.CostRunSimulation); err != nil {
		if errors.Is(err, repos.ErrInsufficientPoints) {
			return nil, apierr.New(http.StatusPaymentRequired, apierr.CodeInsufficientFunds, err)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// The balance changed the moment the session row landed; tell the
	// client before the slow part starts.
	if user, uErr := rs.userRepo.GetByID(ctx, nil, userID); uErr == nil {
		rs.notifier.CreditsChanged(userID, user.Points)
	} else {
		rs.log.Warn("failed to refresh user after charge", "userID", userID, "error", uErr)
	}

	in := RunInput{
		Personas:    cohort.Personas,
		Mode:        cfg.Mode,
		Snapshot:    snapshot,
		TemplateID:  cfg.Template.ID,
		Language:    cohort.Language,
		CustomInput: cfg.CustomInput,
	}
	simCtx, span := otel.Tracer("simucrowd-backend/run").Start(ctx, "simulation.RunFocusGroup",
		trace.WithAttributes(attribute.String("template.id", cfg.Template.ID)))
	out, simErr := rs.simulation.RunFocusGroup(simCtx, in, func(progress int, stage string) {
		rs.notifier.RunProgress(userID, session.ID, progress, stage)
	})
	span.End()
	if simErr != nil {
		rs.log.Error("simulation failed, keeping charged session", "sessionID", session.ID, "error", simErr)
		rs.notifier.RunFailed(userID, session.ID, simErr.Error())
		return nil, apierr.New(http.StatusBadGateway, apierr.CodeSimulationFailed, simErr)
	}

	record := types.AnalysisRecord{
		ID:                 uuid.NewString(),
		Timestamp:          time.Now().UnixMilli(),
		Type:               cfg.Mode,
		Directive:          snapshot.FrozenContent,
		Options:            snapshot.Options,
		Images:             snapshot.FrozenImages,
		Results:            out.Results,
		ConfidenceScore:    out.ConfidenceScore,
		Summary:            out.Summary,
		ShortTitle:         out.ShortTitle,
		StructuredInsights: out.StructuredInsights,
		ActionItems:        out.ActionItems,
	}
	session.Analyses = append(session.Analyses, record)
	session.ShortTitle = out.ShortTitle

	if err := rs.sessionRepo.Update(ctx, nil, session); err != nil {
		rs.notifier.RunFailed(userID, session.ID, "failed to persist analysis")
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	rs.notifier.RunCompleted(userID, session.ID, record.ID)
	return session, nil
}
