package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type BriefHandler struct {
  briefService services.BriefService
}

func NewBriefHandler(briefService services.BriefService) *BriefHandler {
  return &BriefHandler{briefService: briefService}
}

func (bh *BriefHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  briefs, err := bh.briefService.List(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"briefs": briefs})
}

func (bh *BriefHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  briefID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  brief, err := bh.briefService.Get(c.Request.Context(), rd.UserID, briefID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"brief": brief})
}

func (bh *BriefHandler) Create(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var brief types.MasterBrief
  if err := c.ShouldBindJSON(&brief); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  created, err := bh.briefService.Create(c.Request.Context(), rd.UserID, &brief)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"brief": created})
}

func (bh *BriefHandler) Update(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  briefID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  var brief types.MasterBrief
  if err := c.ShouldBindJSON(&brief); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  brief.ID = briefID
  updated, err := bh.briefService.Update(c.Request.Context(), rd.UserID, &brief)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"brief": updated})
}

func (bh *BriefHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  briefID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  if err := bh.briefService.Delete(c.Request.Context(), rd.UserID, briefID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": briefID})
}
