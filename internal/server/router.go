package server

import (
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/simucrowd/simucrowd-backend/internal/handlers"
  "github.com/simucrowd/simucrowd-backend/internal/middleware"
  "github.com/simucrowd/simucrowd-backend/internal/utils"
)

type RouterConfig struct {
  AuthMiddleware    *middleware.AuthMiddleware
  AuthHandler       *handlers.AuthHandler
  UserHandler       *handlers.UserHandler
  CohortHandler     *handlers.CohortHandler
  BriefHandler      *handlers.BriefHandler
  TemplateHandler   *handlers.TemplateHandler
  SessionHandler    *handlers.SessionHandler
  ExperimentHandler *handlers.ExperimentHandler
  PaymentHandler    *handlers.PaymentHandler
  ArticleHandler    *handlers.ArticleHandler
  WorkspaceHandler  *handlers.WorkspaceHandler
  RealtimeHandler   *handlers.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(otelgin.Middleware("simucrowd-backend"))

  // Cors
  origins := utils.GetEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173", nil)
  router.Use(cors.New(cors.Config{
    AllowOrigins:     strings.Split(origins, ","),
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // SSE
  protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.PUT("/user/plan", cfg.UserHandler.ChangePlan)
  protected.PUT("/user/avatar", cfg.UserHandler.UploadAvatar)
  // Workspace bootstrap
  protected.GET("/workspace", cfg.WorkspaceHandler.Load)
  // Templates
  protected.GET("/templates", cfg.TemplateHandler.Catalog)
  protected.GET("/templates/:id", cfg.TemplateHandler.Get)
  // Cohorts
  protected.GET("/cohorts", cfg.CohortHandler.List)
  protected.GET("/cohorts/:id", cfg.CohortHandler.Get)
  protected.POST("/cohorts/generate", cfg.CohortHandler.Generate)
  protected.DELETE("/cohorts/:id", cfg.CohortHandler.Delete)
  // Briefs
  protected.GET("/briefs", cfg.BriefHandler.List)
  protected.GET("/briefs/:id", cfg.BriefHandler.Get)
  protected.POST("/briefs", cfg.BriefHandler.Create)
  protected.PUT("/briefs/:id", cfg.BriefHandler.Update)
  protected.DELETE("/briefs/:id", cfg.BriefHandler.Delete)
  // Experiment wizard
  protected.GET("/experiment/draft", cfg.ExperimentHandler.GetDraft)
  protected.POST("/experiment/draft/template", cfg.ExperimentHandler.SelectTemplate)
  protected.POST("/experiment/draft/cohort", cfg.ExperimentHandler.SelectCohort)
  protected.POST("/experiment/draft/brief", cfg.ExperimentHandler.SelectBrief)
  protected.POST("/experiment/draft/input", cfg.ExperimentHandler.SetCustomInput)
  protected.POST("/experiment/draft/step", cfg.ExperimentHandler.GoTo)
  protected.DELETE("/experiment/draft", cfg.ExperimentHandler.ResetDraft)
  protected.POST("/experiment/launch", cfg.ExperimentHandler.Launch)
  // Sessions
  protected.GET("/sessions", cfg.SessionHandler.List)
  protected.GET("/sessions/:id", cfg.SessionHandler.Get)
  // Payments
  protected.POST("/payments/orders", cfg.PaymentHandler.ProcessOrder)
  protected.GET("/payments/transactions", cfg.PaymentHandler.ListTransactions)
  // Articles
  protected.GET("/articles", cfg.ArticleHandler.List)

  return router
}
