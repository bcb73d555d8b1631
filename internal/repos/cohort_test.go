package repos

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"

  "github.com/simucrowd/simucrowd-backend/internal/types"
)

func newCohort(ownerID uuid.UUID) *types.AudienceCohort {
  return &types.AudienceCohort{
    ID:          uuid.New(),
    OwnerUserID: ownerID,
    Name:        "US Freelancers",
    Language:    "en",
  }
}

func TestCohortCreateChargingDebitsPoints(t *testing.T) {
  db, log := testDB(t)
  repo := NewCohortRepo(db, log)
  user := seedUser(t, db, 12)

  created, err := repo.CreateCharging(context.Background(), newCohort(user.ID), types.CostCreateCohort)
  if err != nil {
    t.Fatalf("CreateCharging: %v", err)
  }

  var fresh types.User
  if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
    t.Fatalf("reload user: %v", err)
  }
  if fresh.Points != 7 {
    t.Fatalf("points = %d, want 7", fresh.Points)
  }

  var stored types.AudienceCohort
  if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
    t.Fatalf("cohort not persisted: %v", err)
  }
}

func TestCohortCreateChargingInsufficientPoints(t *testing.T) {
  db, log := testDB(t)
  repo := NewCohortRepo(db, log)
  user := seedUser(t, db, types.CostCreateCohort-1)

  _, err := repo.CreateCharging(context.Background(), newCohort(user.ID), types.CostCreateCohort)
  if !errors.Is(err, ErrInsufficientPoints) {
    t.Fatalf("err = %v, want ErrInsufficientPoints", err)
  }

  var count int64
  if err := db.Model(&types.AudienceCohort{}).Count(&count).Error; err != nil {
    t.Fatalf("count cohorts: %v", err)
  }
  if count != 0 {
    t.Fatalf("cohort inserted despite failed debit")
  }
  var fresh types.User
  if err := db.First(&fresh, "id = ?", user.ID).Error; err != nil {
    t.Fatalf("reload user: %v", err)
  }
  if fresh.Points != types.CostCreateCohort-1 {
    t.Fatalf("points = %d, balance changed on failed charge", fresh.Points)
  }
}
