package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/repos"
)

type ArticleHandler struct {
  articleRepo repos.ArticleRepo
}

func NewArticleHandler(articleRepo repos.ArticleRepo) *ArticleHandler {
  return &ArticleHandler{articleRepo: articleRepo}
}

func (ah *ArticleHandler) List(c *gin.Context) {
  articles, err := ah.articleRepo.List(c.Request.Context(), nil)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"articles": articles})
}
