package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
)

type WorkspaceHandler struct {
  workspaceService services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService services.WorkspaceService) *WorkspaceHandler {
  return &WorkspaceHandler{workspaceService: workspaceService}
}

func (wh *WorkspaceHandler) Load(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  snap, err := wh.workspaceService.Load(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, snap)
}
