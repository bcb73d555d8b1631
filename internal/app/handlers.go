package app

import (
	"github.com/simucrowd/simucrowd-backend/internal/handlers"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/sse"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Cohort     *handlers.CohortHandler
	Brief      *handlers.BriefHandler
	Template   *handlers.TemplateHandler
	Session    *handlers.SessionHandler
	Experiment *handlers.ExperimentHandler
	Payment    *handlers.PaymentHandler
	Article    *handlers.ArticleHandler
	Workspace  *handlers.WorkspaceHandler
	Realtime   *handlers.RealtimeHandler
}

func wireHandlers(log *logger.Logger, reposet Repos, serviceset Services, hub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		User:       handlers.NewUserHandler(serviceset.User),
		Cohort:     handlers.NewCohortHandler(serviceset.Cohort),
		Brief:      handlers.NewBriefHandler(serviceset.Brief),
		Template:   handlers.NewTemplateHandler(serviceset.Template),
		Session:    handlers.NewSessionHandler(serviceset.Session),
		Experiment: handlers.NewExperimentHandler(serviceset.Draft, serviceset.Run),
		Payment:    handlers.NewPaymentHandler(serviceset.Payment),
		Article:    handlers.NewArticleHandler(reposet.Article),
		Workspace:  handlers.NewWorkspaceHandler(serviceset.Workspace),
		Realtime:   handlers.NewRealtimeHandler(log, hub),
	}
}
