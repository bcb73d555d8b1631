package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simucrowd/simucrowd-backend/internal/experiment"
	"github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/repos"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

type fakeSessionRepo struct {
	insufficient bool
	created      *types.Session
	updated      *types.Session
}

func (f *fakeSessionRepo) CreateCharging(ctx context.Context, session *types.Session, cost int) (*types.Session, error) {
	if f.insufficient {
		return nil, repos.ErrInsufficientPoints
	}
	f.created = session
	return session, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.Session) error {
	f.updated = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Session, error) {
	return f.created, nil
}

func (f *fakeSessionRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Session, error) {
	return nil, nil
}

type fakeUserRepo struct {
	repos.UserRepo
	user *types.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	if f.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

type fakeSimulation struct {
	called bool
	fail   bool
	out    *SimulationOutput
}

func (f *fakeSimulation) RunFocusGroup(ctx context.Context, in RunInput, onProgress func(int, string)) (*SimulationOutput, error) {
	f.called = true
	if onProgress != nil {
		onProgress(50, "collecting reactions")
	}
	if f.fail {
		return nil, errors.New("model unavailable")
	}
	return f.out, nil
}

func (f *fakeSimulation) GenerateCohort(ctx context.Context, seed CohortSeed) (*CohortContent, error) {
	return nil, errors.New("not implemented")
}

type recordedEvent struct {
	kind     string
	progress int
}

type fakeNotifier struct {
	events []recordedEvent
}

func (f *fakeNotifier) RunProgress(userID, sessionID uuid.UUID, progress int, stage string) {
	f.events = append(f.events, recordedEvent{kind: "progress", progress: progress})
}

func (f *fakeNotifier) RunCompleted(userID, sessionID uuid.UUID, analysisID string) {
	f.events = append(f.events, recordedEvent{kind: "completed"})
}

func (f *fakeNotifier) RunFailed(userID, sessionID uuid.UUID, message string) {
	f.events = append(f.events, recordedEvent{kind: "failed"})
}

func (f *fakeNotifier) CreditsChanged(userID uuid.UUID, balance int) {
	f.events = append(f.events, recordedEvent{kind: "credits"})
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func launchableConfig() experiment.Config {
	brief := types.MasterBrief{
		ID:      uuid.New(),
		Title:   "Spring Campaign",
		Content: "Bold claims, soft pastel palette.",
	}
	snap := experiment.SnapshotFromBrief(brief)
	return experiment.Config{
		Template: &types.TemplateDefinition{
			ID:    "ads_copy",
			Title: "Ad Copy Simulation",
			Modes: []types.ExperimentMode{types.ModeValidation},
		},
		Mode: types.ModeValidation,
		Cohort: &types.AudienceCohort{
			ID:       uuid.New(),
			Name:     "US Freelancers",
			Language: "en",
			Personas: []types.Persona{{ID: "p1", Name: "Dana"}},
		},
		ActiveSnapshot: &snap,
	}
}

func TestLaunchHappyPath(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessionRepo{}
	users := &fakeUserRepo{user: &types.User{ID: userID, Points: 10}}
	sim := &fakeSimulation{out: &SimulationOutput{
		Results:         []types.AnalysisResult{{PersonaID: "p1", Sentiment: "POSITIVE", Score: 82}},
		ConfidenceScore: 74,
		Summary:         "The panel responded well.",
		ShortTitle:      "Spring Campaign Test",
	}}
	notifier := &fakeNotifier{}

	svc := NewRunService(nil, testLogger(t), sessions, users, sim, notifier)
	session, err := svc.Launch(context.Background(), userID, launchableConfig())
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}

	if sessions.created == nil {
		t.Fatal("expected session to be created")
	}
	if len(session.Analyses) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(session.Analyses))
	}
	if session.Analyses[0].Directive != "Bold claims, soft pastel palette." {
		t.Errorf("analysis directive should carry the frozen content, got %q", session.Analyses[0].Directive)
	}
	if session.ShortTitle != "Spring Campaign Test" {
		t.Errorf("unexpected short title %q", session.ShortTitle)
	}
	if sessions.updated == nil {
		t.Error("expected analysis to be persisted")
	}

	var sawProgress, sawCompleted bool
	for _, ev := range notifier.events {
		switch ev.kind {
		case "progress":
			sawProgress = true
		case "completed":
			sawCompleted = true
		}
	}
	if !sawProgress || !sawCompleted {
		t.Errorf("expected progress and completed events, got %v", notifier.events)
	}
}

func TestLaunchInsufficientFundsSkipsSimulation(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessionRepo{insufficient: true}
	users := &fakeUserRepo{user: &types.User{ID: userID, Points: 3}}
	sim := &fakeSimulation{}
	notifier := &fakeNotifier{}

	svc := NewRunService(nil, testLogger(t), sessions, users, sim, notifier)
	_, err := svc.Launch(context.Background(), userID, launchableConfig())
	if !apierr.IsInsufficientFunds(err) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if sim.called {
		t.Error("simulation must not run when the charge is rejected")
	}
	if sessions.created != nil {
		t.Error("no session should exist when the charge is rejected")
	}
}

func TestLaunchWithoutSnapshot(t *testing.T) {
	userID := uuid.New()
	cfg := launchableConfig()
	cfg.ActiveSnapshot = nil

	sessions := &fakeSessionRepo{}
	sim := &fakeSimulation{}
	users := &fakeUserRepo{user: &types.User{ID: userID, Points: 10}}
	svc := NewRunService(nil, testLogger(t), sessions, users, sim, &fakeNotifier{})

	_, err := svc.Launch(context.Background(), userID, cfg)
	if apierr.Code(err) != apierr.CodeValidation {
		t.Fatalf("expected VALIDATION error, got %v", err)
	}
	if sim.called || sessions.created != nil {
		t.Error("nothing should run or be charged without a snapshot")
	}
}

func TestLaunchAuthoritativeDebitStillGuards(t *testing.T) {
	// The advisory balance read passes but the charge itself is rejected,
	// as happens when a concurrent run spends the credits in between.
	userID := uuid.New()
	sessions := &fakeSessionRepo{insufficient: true}
	users := &fakeUserRepo{user: &types.User{ID: userID, Points: 10}}
	sim := &fakeSimulation{}

	svc := NewRunService(nil, testLogger(t), sessions, users, sim, &fakeNotifier{})
	_, err := svc.Launch(context.Background(), userID, launchableConfig())
	if !apierr.IsInsufficientFunds(err) {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if sim.called {
		t.Error("simulation must not run when the charge is rejected")
	}
}

func TestLaunchSimulationFailureKeepsChargedSession(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessionRepo{}
	users := &fakeUserRepo{user: &types.User{ID: userID, Points: 10}}
	sim := &fakeSimulation{fail: true}
	notifier := &fakeNotifier{}

	svc := NewRunService(nil, testLogger(t), sessions, users, sim, notifier)
	_, err := svc.Launch(context.Background(), userID, launchableConfig())
	if apierr.Code(err) != apierr.CodeSimulationFailed {
		t.Fatalf("expected SIMULATION_FAILED, got %v", err)
	}

	if sessions.created == nil {
		t.Fatal("charged session must survive the failure")
	}
	if len(sessions.created.Analyses) != 0 {
		t.Errorf("failed run must leave the analysis list empty, got %d", len(sessions.created.Analyses))
	}

	var sawFailed bool
	for _, ev := range notifier.events {
		if ev.kind == "failed" {
			sawFailed = true
		}
	}
	if !sawFailed {
		t.Error("expected a failure event")
	}
}
