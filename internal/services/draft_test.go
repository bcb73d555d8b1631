package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/experiment"
  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

func draftFixture(t *testing.T) (DraftService, *gorm.DB, *types.User) {
  t.Helper()
  db := serviceTestDB(t)
  if err := db.AutoMigrate(&types.AudienceCohort{}); err != nil {
    t.Fatalf("automigrate: %v", err)
  }
  log := testLogger(t)

  templates, err := NewTemplateService(log)
  if err != nil {
    t.Fatalf("template service: %v", err)
  }
  svc := NewDraftService(log, templates, repos.NewCohortRepo(db, log), repos.NewBriefRepo(db, log))
  user := seedPlanUser(t, db, types.PlanPro)
  return svc, db, user
}

func seedCohort(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *types.AudienceCohort {
  t.Helper()
  cohort := &types.AudienceCohort{
    ID:          uuid.New(),
    OwnerUserID: ownerID,
    Name:        "US Freelancers",
    Language:    "en",
    Personas:    []types.Persona{{ID: "p1", Name: "Dana"}},
  }
  if err := db.Create(cohort).Error; err != nil {
    t.Fatalf("seed cohort: %v", err)
  }
  return cohort
}

func seedBrief(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *types.MasterBrief {
  t.Helper()
  brief := &types.MasterBrief{
    ID:          uuid.New(),
    OwnerUserID: ownerID,
    Title:       title,
    Content:     title + " content",
  }
  if err := db.Create(brief).Error; err != nil {
    t.Fatalf("seed brief: %v", err)
  }
  return brief
}

func TestDraftValidationFlow(t *testing.T) {
  svc, db, user := draftFixture(t)
  ctx := context.Background()
  cohort := seedCohort(t, db, user.ID)
  brief := seedBrief(t, db, user.ID, "Spring Campaign")

  view, err := svc.SelectTemplate(ctx, user.ID, "ads_copy", types.ModeValidation)
  if err != nil {
    t.Fatalf("select template: %v", err)
  }
  if view.Step != experiment.StepAudience {
    t.Errorf("step = %s, want AUDIENCE", view.Step)
  }

  view, err = svc.SelectCohort(ctx, user.ID, cohort.ID)
  if err != nil {
    t.Fatalf("select cohort: %v", err)
  }
  if view.Step != experiment.StepContent {
    t.Errorf("step = %s, want CONTENT", view.Step)
  }

  view, launch, err := svc.SelectBrief(ctx, user.ID, brief.ID)
  if err != nil {
    t.Fatalf("select brief: %v", err)
  }
  if !launch {
    t.Error("validation-mode selection should trigger launch")
  }
  if view.Snapshot == nil || view.Snapshot.FrozenTitle != "Spring Campaign" {
    t.Errorf("snapshot not frozen from brief: %+v", view.Snapshot)
  }

  cfg, err := svc.Take(ctx, user.ID)
  if err != nil {
    t.Fatalf("take: %v", err)
  }
  if cfg.ActiveSnapshot == nil {
    t.Fatal("taken config must carry the snapshot")
  }
}

func TestDraftPreferenceTray(t *testing.T) {
  svc, db, user := draftFixture(t)
  ctx := context.Background()
  cohort := seedCohort(t, db, user.ID)
  a := seedBrief(t, db, user.ID, "Variant A")
  b := seedBrief(t, db, user.ID, "Variant B")

  if _, err := svc.SelectTemplate(ctx, user.ID, "ads_copy", types.ModePreference); err != nil {
    t.Fatalf("select template: %v", err)
  }
  if _, err := svc.SelectCohort(ctx, user.ID, cohort.ID); err != nil {
    t.Fatalf("select cohort: %v", err)
  }

  view, launch, err := svc.SelectBrief(ctx, user.ID, a.ID)
  if err != nil {
    t.Fatalf("select brief a: %v", err)
  }
  if launch || view.CanLaunch {
    t.Error("one tray item must not be launchable")
  }

  view, launch, err = svc.SelectBrief(ctx, user.ID, b.ID)
  if err != nil {
    t.Fatalf("select brief b: %v", err)
  }
  if launch {
    t.Error("preference mode never auto-launches")
  }
  if !view.CanLaunch {
    t.Error("two tray items should enable launch")
  }
  if len(view.CompareBriefIDs) != 2 {
    t.Errorf("tray size = %d, want 2", len(view.CompareBriefIDs))
  }
}

func TestDraftCustomInputKeepsNavigatedStep(t *testing.T) {
  svc, db, user := draftFixture(t)
  ctx := context.Background()
  cohort := seedCohort(t, db, user.ID)

  if _, err := svc.SelectTemplate(ctx, user.ID, "ads_copy", types.ModeValidation); err != nil {
    t.Fatalf("select template: %v", err)
  }
  if _, err := svc.SelectCohort(ctx, user.ID, cohort.ID); err != nil {
    t.Fatalf("select cohort: %v", err)
  }
  if _, err := svc.GoTo(ctx, user.ID, experiment.StepTemplate); err != nil {
    t.Fatalf("go to template: %v", err)
  }

  view, err := svc.SetCustomInput(ctx, user.ID, "lead with the discount")
  if err != nil {
    t.Fatalf("set custom input: %v", err)
  }
  if view.Step != experiment.StepTemplate {
    t.Errorf("step = %s after custom input, want TEMPLATE", view.Step)
  }
  if view.CustomInput != "lead with the discount" {
    t.Errorf("custom input = %q", view.CustomInput)
  }
}

func TestDraftTakeWithoutSnapshot(t *testing.T) {
  svc, _, user := draftFixture(t)
  _, err := svc.Take(context.Background(), user.ID)
  if apierr.Code(err) != apierr.CodeValidation {
    t.Fatalf("expected VALIDATION error, got %v", err)
  }
  if err == nil || err.Error() != "No Brief Snapshot selected." {
    t.Errorf("unexpected message: %v", err)
  }
}

func TestDraftTemplateRejectsUnsupportedMode(t *testing.T) {
  svc, _, user := draftFixture(t)
  // vid_storyboard is validation-only in the catalog.
  _, err := svc.SelectTemplate(context.Background(), user.ID, "vid_storyboard", types.ModePreference)
  if err == nil {
    t.Fatal("expected rejection for unsupported mode")
  }
}
