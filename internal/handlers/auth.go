package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/simucrowd/simucrowd-backend/internal/services"
  "github.com/simucrowd/simucrowd-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

type registerRequest struct {
  Email    string `json:"email" binding:"required"`
  Password string `json:"password" binding:"required"`
  Name     string `json:"name" binding:"required"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req registerRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }

  user := &types.User{
    Email:    req.Email,
    Password: req.Password,
    Name:     req.Name,
  }
  token, err := ah.authService.RegisterUser(c.Request.Context(), user)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"token": token, "user": user})
}

type loginRequest struct {
  Email    string `json:"email" binding:"required"`
  Password string `json:"password" binding:"required"`
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req loginRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "", err)
    return
  }

  token, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, "", err)
    return
  }
  RespondOK(c, gin.H{"token": token})
}
