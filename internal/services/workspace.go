package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/repos"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

// WorkspaceSnapshot is everything the client needs to render after login:
// the user plus all owned assets in one payload.
type WorkspaceSnapshot struct {
	User     *types.User             `json:"user"`
	Cohorts  []*types.AudienceCohort `json:"cohorts"`
	Briefs   []*types.MasterBrief    `json:"briefs"`
	Sessions []*types.Session        `json:"sessions"`
	Articles []*types.Article        `json:"articles"`
}

type WorkspaceService interface {
	Load(ctx context.Context, userID uuid.UUID) (*WorkspaceSnapshot, error)
}

type workspaceService struct {
	db          *gorm.DB
	log         *logger.Logger
	userRepo    repos.UserRepo
	cohortRepo  repos.CohortRepo
	briefRepo   repos.BriefRepo
	sessionRepo repos.SessionRepo
	articleRepo repos.ArticleRepo
}

func NewWorkspaceService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	cohortRepo repos.CohortRepo,
	briefRepo repos.BriefRepo,
	sessionRepo repos.SessionRepo,
	articleRepo repos.ArticleRepo,
) WorkspaceService {
	return &workspaceService{
		db:          db,
		log:         log.With("service", "WorkspaceService"),
		userRepo:    userRepo,
		cohortRepo:  cohortRepo,
		briefRepo:   briefRepo,
		sessionRepo: sessionRepo,
		articleRepo: articleRepo,
	}
}

// Load fans the five reads out concurrently; any failure fails the whole
// bootstrap since a partial workspace is worse than a retry.
func (ws *workspaceService) Load(ctx context.Context, userID uuid.UUID) (*WorkspaceSnapshot, error) {
	snap := &WorkspaceSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := ws.userRepo.GetByID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		snap.User = user
		return nil
	})
	g.Go(func() error {
		cohorts, err := ws.cohortRepo.ListByOwner(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load cohorts: %w", err)
		}
		snap.Cohorts = cohorts
		return nil
	})
	g.Go(func() error {
		briefs, err := ws.briefRepo.ListByOwner(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load briefs: %w", err)
		}
		snap.Briefs = briefs
		return nil
	})
	g.Go(func() error {
		sessions, err := ws.sessionRepo.ListByOwner(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		snap.Sessions = sessions
		return nil
	})
	g.Go(func() error {
		articles, err := ws.articleRepo.List(gctx, nil)
		if err != nil {
			return fmt.Errorf("load articles: %w", err)
		}
		snap.Articles = articles
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
