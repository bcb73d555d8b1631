package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/simucrowd/simucrowd-backend/internal/experiment"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

// ExperimentHandler drives the setup wizard and hands finished drafts to
// the run orchestrator.
type ExperimentHandler struct {
  draftService services.DraftService
  runService   services.RunService
}

func NewExperimentHandler(draftService services.DraftService, runService services.RunService) *ExperimentHandler {
  return &ExperimentHandler{draftService: draftService, runService: runService}
}

func (eh *ExperimentHandler) GetDraft(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  RespondOK(c, gin.H{"draft": eh.draftService.Get(c.Request.Context(), rd.UserID)})
}

type selectTemplateRequest struct {
  TemplateID string               `json:"template_id" binding:"required"`
  Mode       types.ExperimentMode `json:"mode" binding:"required"`
}

func (eh *ExperimentHandler) SelectTemplate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req selectTemplateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  view, err := eh.draftService.SelectTemplate(c.Request.Context(), rd.UserID, req.TemplateID, req.Mode)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": view})
}

type selectCohortRequest struct {
  CohortID uuid.UUID `json:"cohort_id" binding:"required"`
}

func (eh *ExperimentHandler) SelectCohort(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req selectCohortRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  view, err := eh.draftService.SelectCohort(c.Request.Context(), rd.UserID, req.CohortID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": view})
}

type selectBriefRequest struct {
  BriefID uuid.UUID `json:"brief_id" binding:"required"`
}

// SelectBrief toggles the asset selection. In validation mode a selection
// completes the draft, so the run launches immediately and the response
// carries the finished session instead of just the draft.
func (eh *ExperimentHandler) SelectBrief(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req selectBriefRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  view, launch, err := eh.draftService.SelectBrief(c.Request.Context(), rd.UserID, req.BriefID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  if !launch {
    RespondOK(c, gin.H{"draft": view})
    return
  }
  eh.launchTaken(c)
}

type customInputRequest struct {
  CustomInput string `json:"custom_input"`
}

func (eh *ExperimentHandler) SetCustomInput(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req customInputRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  view, err := eh.draftService.SetCustomInput(c.Request.Context(), rd.UserID, req.CustomInput)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": view})
}

type goToRequest struct {
  Step experiment.Step `json:"step" binding:"required"`
}

func (eh *ExperimentHandler) GoTo(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req goToRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  view, err := eh.draftService.GoTo(c.Request.Context(), rd.UserID, req.Step)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"draft": view})
}

func (eh *ExperimentHandler) ResetDraft(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  eh.draftService.Reset(c.Request.Context(), rd.UserID)
  RespondOK(c, gin.H{"draft": eh.draftService.Get(c.Request.Context(), rd.UserID)})
}

// Launch is the explicit launch control for preference mode, where the
// tray can hold 2-3 items before the user commits.
func (eh *ExperimentHandler) Launch(c *gin.Context) {
  eh.launchTaken(c)
}

func (eh *ExperimentHandler) launchTaken(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  cfg, err := eh.draftService.Take(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  session, err := eh.runService.Launch(c.Request.Context(), rd.UserID, cfg)
  if err != nil {
    // The draft stays untouched so the wizard can retry from where it was.
    RespondServiceError(c, err)
    return
  }
  eh.draftService.Reset(c.Request.Context(), rd.UserID)
  RespondOK(c, gin.H{"session": session})
}
