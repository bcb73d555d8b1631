package app

import (
	"gorm.io/gorm"

	redisclient "github.com/simucrowd/simucrowd-backend/internal/clients/redis"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/services"
	"github.com/simucrowd/simucrowd-backend/internal/sse"
)

type Services struct {
	Avatar     services.AvatarService
	Simulation services.SimulationClient
	Notifier   services.RunNotifier
	Auth       services.AuthService
	User       services.UserService
	Cohort     services.CohortService
	Brief      services.BriefService
	Template   services.TemplateService
	Session    services.SessionService
	Draft      services.DraftService
	Run        services.RunService
	Payment    services.PaymentService
	Workspace  services.WorkspaceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, hub *sse.SSEHub, bus redisclient.EventBus) (Services, error) {
	log.Info("Wiring services...")

	avatarService, err := services.NewAvatarService(log)
	if err != nil {
		return Services{}, err
	}
	simulationClient, err := services.NewOpenAISimulation(log)
	if err != nil {
		return Services{}, err
	}
	templateService, err := services.NewTemplateService(log)
	if err != nil {
		return Services{}, err
	}

	notifier := services.NewRunNotifier(log, hub, bus)
	authService := services.NewAuthService(db, log, reposet.User, avatarService, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	userService := services.NewUserService(db, log, reposet.User, avatarService, notifier)
	cohortService := services.NewCohortService(db, log, reposet.Cohort, reposet.User, simulationClient, notifier)
	briefService := services.NewBriefService(db, log, reposet.Brief, reposet.User)
	sessionService := services.NewSessionService(db, log, reposet.Session)
	draftService := services.NewDraftService(log, templateService, reposet.Cohort, reposet.Brief)
	runService := services.NewRunService(db, log, reposet.Session, reposet.User, simulationClient, notifier)
	paymentService := services.NewPaymentService(db, log, reposet.Payment, userService)
	workspaceService := services.NewWorkspaceService(db, log, reposet.User, reposet.Cohort, reposet.Brief, reposet.Session, reposet.Article)

	return Services{
		Avatar:     avatarService,
		Simulation: simulationClient,
		Notifier:   notifier,
		Auth:       authService,
		User:       userService,
		Cohort:     cohortService,
		Brief:      briefService,
		Template:   templateService,
		Session:    sessionService,
		Draft:      draftService,
		Run:        runService,
		Payment:    paymentService,
		Workspace:  workspaceService,
	}, nil
}
