package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/services"
)

type TemplateHandler struct {
  templateService services.TemplateService
}

func NewTemplateHandler(templateService services.TemplateService) *TemplateHandler {
  return &TemplateHandler{templateService: templateService}
}

func (th *TemplateHandler) Catalog(c *gin.Context) {
  RespondOK(c, gin.H{
    "categories":    th.templateService.Catalog(),
    "quick_filters": th.templateService.QuickFilters(),
  })
}

func (th *TemplateHandler) Get(c *gin.Context) {
  tpl, err := th.templateService.Get(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusNotFound, "", err)
    return
  }
  RespondOK(c, gin.H{"template": tpl})
}
