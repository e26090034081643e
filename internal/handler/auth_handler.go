package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meejain/da-crawl/internal/middleware"
	"github.com/meejain/da-crawl/internal/service"
)

// AuthHandler provides endpoints for authentication operations.
type AuthHandler struct {
	tokenService service.TokenService
	userService  service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(tokenService service.TokenService, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		tokenService: tokenService,
		userService:  userService,
	}
}

// LoginRequest represents the expected body for login requests via JSON.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginBasic authenticates a user from a Basic Authorization header and
// returns a JWT token.
func (h *AuthHandler) LoginBasic(c *gin.Context) {
	email, password, err := middleware.DecodeBasicCredentials(c.GetHeader("Authorization"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userDTO, err := h.userService.Authenticate(email, password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	token, err := h.tokenService.Generate(userDTO.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// LoginJWT authenticates a user from a JSON payload and returns a JWT token.
func (h *AuthHandler) LoginJWT(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	userDTO, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	token, err := h.tokenService.Generate(userDTO.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout revokes the JWT that authenticated this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	jtiAny, exists := c.Get("jti")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no token to revoke"})
		return
	}
	jti := jtiAny.(string)

	if err := h.tokenService.Invalidate(jti); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// RegisterPublicRoutes mounts login endpoints on the given group.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/login/basic", h.LoginBasic)
	rg.POST("/login/jwt", h.LoginJWT)
}

// RegisterProtectedRoutes mounts logout on the given group.
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
}
