package handlers

import (
  "io"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  me, err := uh.userService.GetMe(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": me})
}

type changePlanRequest struct {
  Plan types.PlanLevel `json:"plan" binding:"required"`
}

func (uh *UserHandler) ChangePlan(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req changePlanRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  user, err := uh.userService.ApplyPlan(c.Request.Context(), rd.UserID, req.Plan)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": user})
}

func (uh *UserHandler) UploadAvatar(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 8<<20))
  if err != nil || len(raw) == 0 {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  user, err := uh.userService.SetAvatar(c.Request.Context(), rd.UserID, raw)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"me": user})
}
