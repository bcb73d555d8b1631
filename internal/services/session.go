package services

import (
  "context"
  "fmt"
  "net/http"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
  "github.com/simucrowd/simucrowd-backend/internal/platform/logger"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type SessionService interface {
  List(ctx context.Context, userID uuid.UUID) ([]*types.Session, error)
  Get(ctx context.Context, userID, sessionID uuid.UUID) (*types.Session, error)
}

type sessionService struct {
  db          *gorm.DB
  log         *logger.Logger
  sessionRepo repos.SessionRepo
}

func NewSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.SessionRepo) SessionService {
  serviceLog := log.With("service", "SessionService")
  return &sessionService{
    db:          db,
    log:         serviceLog,
    sessionRepo: sessionRepo,
  }
}

func (ss *sessionService) List(ctx context.Context, userID uuid.UUID) ([]*types.Session, error) {
  sessions, err := ss.sessionRepo.ListByOwner(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("failed to list sessions: %w", err)
  }
  return sessions, nil
}

func (ss *sessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*types.Session, error) {
  session, err := ss.sessionRepo.GetByID(ctx, nil, sessionID)
  if err != nil {
    return nil, fmt.Errorf("failed to load session: %w", err)
  }
  if session.OwnerUserID != userID {
    return nil, apierr.New(http.StatusNotFound, "", fmt.Errorf("session not found"))
  }
  return session, nil
}
