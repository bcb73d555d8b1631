package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
)

type SessionHandler struct {
  sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
  return &SessionHandler{sessionService: sessionService}
}

func (sh *SessionHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  sessions, err := sh.sessionService.List(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"sessions": sessions})
}

func (sh *SessionHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  sessionID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  session, err := sh.sessionService.Get(c.Request.Context(), rd.UserID, sessionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"session": session})
}
