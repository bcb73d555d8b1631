package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/simucrowd/simucrowd-backend/internal/requestdata"
  "github.com/simucrowd/simucrowd-backend/internal/services"
)

type CohortHandler struct {
  cohortService services.CohortService
}

func NewCohortHandler(cohortService services.CohortService) *CohortHandler {
  return &CohortHandler{cohortService: cohortService}
}

func (ch *CohortHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  cohorts, err := ch.cohortService.List(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"cohorts": cohorts})
}

func (ch *CohortHandler) Get(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  cohortID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  cohort, err := ch.cohortService.Get(c.Request.Context(), rd.UserID, cohortID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"cohort": cohort})
}

type generateCohortRequest struct {
  Category    string `json:"category"`
  Name        string `json:"name"`
  Description string `json:"description"`
  Language    string `json:"language"`
}

func (ch *CohortHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var req generateCohortRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  cohort, err := ch.cohortService.Generate(c.Request.Context(), rd.UserID, services.CohortSeed{
    Category:    req.Category,
    Name:        req.Name,
    Description: req.Description,
    Language:    req.Language,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"cohort": cohort})
}

func (ch *CohortHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  cohortID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }
  if err := ch.cohortService.Delete(c.Request.Context(), rd.UserID, cohortID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": cohortID})
}
