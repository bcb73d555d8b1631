package repos

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

func testDB(t *testing.T) (*gorm.DB, *logger.Logger) {
  t.Helper()
  dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(&types.User{}, &types.Session{}, &types.MasterBrief{}, &types.AudienceCohort{}); err != nil {
    t.Fatalf("automigrate: %v", err)
  }
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  t.Cleanup(func() {
    sqlDB, _ := db.DB()
    if sqlDB != nil {
      _ = sqlDB.Close()
    }
  })
  return db, log
}

func seedUser(t *testing.T, db *gorm.DB, points int) *types.User {
  t.Helper()
  user := &types.User{
    ID:       uuid.New(),
    Email:    uuid.NewString() + "@example.com",
    Password: "x",
    Name:     "Demo",
    Points:   points,
  }
  if err := db.Create(user).Error; err != nil {
    t.Fatalf("seed user: %v", err)
  }
  return user
}

func newSession(ownerID uuid.UUID) *types.Session {
  return &types.Session{
    ID:             uuid.New(),
    OwnerUserID:    ownerID,
    Timestamp:      time.Now().UnixMilli(),
    CohortID:       uuid.New(),
    CohortName:     "US Freelancers",
    CohortLanguage: "en",
    TemplateID:     "ads_copy",
    TopicID:        uuid.NewString(),
    TopicTitle:     "Pricing Page v3",
  }
}

func TestCreateChargingDebitsPoints(t *testing.T) {
  db, log := testDB(t)
  repo := NewSessionRepo(db, log)
  user := seedUser(t, db, 15)

  created, err := repo.CreateCharging(context.Background(), newSession(user.ID), types.CostRunSimulation)
  if err != nil {
    t.Fatalf("CreateCharging: %v", err)
  }

  var fresh types.User
  if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
    t.Fatalf("reload user: %v", err)
  }
  if fresh.Points != 5 {
    t.Fatalf("points = %d, want 5", fresh.Points)
  }

  var stored types.Session
  if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
    t.Fatalf("session not persisted: %v", err)
  }
  if stored.CohortName != "US Freelancers" {
    t.Fatalf("stored cohort name = %q", stored.CohortName)
  }
}

func TestCreateChargingInsufficientPoints(t *testing.T) {
  db, log := testDB(t)
  repo := NewSessionRepo(db, log)
  user := seedUser(t, db, types.CostRunSimulation-1)

  _, err := repo.CreateCharging(context.Background(), newSession(user.ID), types.CostRunSimulation)
  if !errors.Is(err, ErrInsufficientPoints) {
    t.Fatalf("err = %v, want ErrInsufficientPoints", err)
  }

  // The transaction must roll back whole: no session row, balance intact.
  var count int64
  if err := db.Model(&types.Session{}).Count(&count).Error; err != nil {
    t.Fatalf("count sessions: %v", err)
  }
  if count != 0 {
    t.Fatalf("session inserted despite failed debit")
  }
  var fresh types.User
  if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
    t.Fatalf("reload user: %v", err)
  }
  if fresh.Points != types.CostRunSimulation-1 {
    t.Fatalf("points = %d, balance changed on failed charge", fresh.Points)
  }
}

func TestUpdateAttachesAnalysis(t *testing.T) {
  db, log := testDB(t)
  repo := NewSessionRepo(db, log)
  user := seedUser(t, db, 50)

  created, err := repo.CreateCharging(context.Background(), newSession(user.ID), types.CostRunSimulation)
  if err != nil {
    t.Fatalf("CreateCharging: %v", err)
  }

  created.Analyses = []types.AnalysisRecord{{
    ID:        uuid.NewString(),
    Timestamp: time.Now().UnixMilli(),
    Type:      types.ModeValidation,
    Directive: "Try our new pricing",
    Results: []types.AnalysisResult{
      {PersonaID: "p1", Sentiment: "Positive", Score: 82, Reaction: "likes it", PurchaseIntent: "High"},
    },
    ConfidenceScore: 0.9,
    Summary:         "Mostly positive",
  }}
  if err := repo.Update(context.Background(), nil, created); err != nil {
    t.Fatalf("Update: %v", err)
  }

  reloaded, err := repo.GetByID(context.Background(), nil, created.ID)
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if len(reloaded.Analyses) != 1 || len(reloaded.Analyses[0].Results) != 1 {
    t.Fatalf("analyses round trip = %+v", reloaded.Analyses)
  }
}
