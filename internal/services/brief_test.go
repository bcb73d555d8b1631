package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

func serviceTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(&types.User{}, &types.MasterBrief{}); err != nil {
    t.Fatalf("automigrate: %v", err)
  }
  t.Cleanup(func() {
    sqlDB, _ := db.DB()
    if sqlDB != nil {
      _ = sqlDB.Close()
    }
  })
  return db
}

func seedPlanUser(t *testing.T, db *gorm.DB, plan types.PlanLevel) *types.User {
  t.Helper()
  user := &types.User{
    ID:        uuid.New(),
    Email:     uuid.NewString() + "@example.com",
    Password:  "x",
    Name:      "Demo",
    PlanLevel: plan,
    Points:    20,
  }
  if err := db.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return user
}

func TestBriefCreateEnforcesPlanQuota(t *testing.T) {
  db := serviceTestDB(t)
  log := testLogger(t)
  svc := NewBriefService(db, log, repos.NewBriefRepo(db, log), repos.NewUserRepo(db, log))

  // Free tier allows a single brief.
  user := seedPlanUser(t, db, types.PlanFree)
  ctx := context.Background()

  first, err := svc.Create(ctx, user.ID, &types.MasterBrief{Title: "First"})
  if err != nil {
    t.Fatalf("first create: %v", err)
  }
  if first.OwnerUserID != user.ID {
    t.Errorf("brief owner = %s, want %s", first.OwnerUserID, user.ID)
  }

  _, err = svc.Create(ctx, user.ID, &types.MasterBrief{Title: "Second"})
  if !apierr.IsPlanLimit(err) {
    t.Fatalf("expected PLAN_LIMIT_REACHED, got %v", err)
  }

  var count int64
  if err := db.Model(&types.MasterBrief{}).Count(&count).Error; err != nil {
    t.Fatalf("count: %v", err)
  }
  if count != 1 {
    t.Errorf("expected 1 brief in store, got %d", count)
  }
}

func TestBriefCreateRequiresTitle(t *testing.T) {
  db := serviceTestDB(t)
  log := testLogger(t)
  svc := NewBriefService(db, log, repos.NewBriefRepo(db, log), repos.NewUserRepo(db, log))

  user := seedPlanUser(t, db, types.PlanPro)
  _, err := svc.Create(context.Background(), user.ID, &types.MasterBrief{Title: "   "})
  if apierr.Code(err) != apierr.CodeValidation {
    t.Fatalf("expected VALIDATION error, got %v", err)
  }
}

func TestBriefUpdateAppendsVersionOnContentChange(t *testing.T) {
  db := serviceTestDB(t)
  log := testLogger(t)
  svc := NewBriefService(db, log, repos.NewBriefRepo(db, log), repos.NewUserRepo(db, log))

  user := seedPlanUser(t, db, types.PlanPro)
  ctx := context.Background()

  brief, err := svc.Create(ctx, user.ID, &types.MasterBrief{Title: "Landing Page", Content: "v1 content"})
  if err != nil {
    t.Fatalf("create: %v", err)
  }

  edited := *brief
  edited.Content = "v2 content"
  updated, err := svc.Update(ctx, user.ID, &edited)
  if err != nil {
    t.Fatalf("update: %v", err)
  }
  if len(updated.Versions) != 1 {
    t.Fatalf("expected 1 version after content edit, got %d", len(updated.Versions))
  }
  if updated.Versions[0].Content != "v1 content" {
    t.Errorf("version should hold the previous content, got %q", updated.Versions[0].Content)
  }

  // A save without a content change must not grow the history.
  again := *updated
  again.Title = "Landing Page v2"
  saved, err := svc.Update(ctx, user.ID, &again)
  if err != nil {
    t.Fatalf("second update: %v", err)
  }
  if len(saved.Versions) != 1 {
    t.Errorf("expected version history to stay at 1, got %d", len(saved.Versions))
  }
}

func TestBriefOwnershipIsolation(t *testing.T) {
  db := serviceTestDB(t)
  log := testLogger(t)
  svc := NewBriefService(db, log, repos.NewBriefRepo(db, log), repos.NewUserRepo(db, log))

  owner := seedPlanUser(t, db, types.PlanPro)
  intruder := seedPlanUser(t, db, types.PlanPro)
  ctx := context.Background()

  brief, err := svc.Create(ctx, owner.ID, &types.MasterBrief{Title: "Private"})
  if err != nil {
    t.Fatalf("create: %v", err)
  }

  if _, err := svc.Get(ctx, intruder.ID, brief.ID); err == nil {
    t.Error("intruder should not read another user's brief")
  }
}
