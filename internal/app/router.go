package app

import (
	"github.com/gin-gonic/gin"

	"github.com/simucrowd/simucrowd-backend/internal/server"
)

func wireRouter(handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:    mw.Auth,
		AuthHandler:       handlerset.Auth,
		UserHandler:       handlerset.User,
		CohortHandler:     handlerset.Cohort,
		BriefHandler:      handlerset.Brief,
		TemplateHandler:   handlerset.Template,
		SessionHandler:    handlerset.Session,
		ExperimentHandler: handlerset.Experiment,
		PaymentHandler:    handlerset.Payment,
		ArticleHandler:    handlerset.Article,
		WorkspaceHandler:  handlerset.Workspace,
		RealtimeHandler:   handlerset.Realtime,
	})
}
