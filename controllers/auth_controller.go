package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/repository"
	"inkwell/utils"
)

const tokenLifetime = 24 * time.Hour

// AuthController issues and revokes admin sessions.
type AuthController struct {
	Users repository.UserStore
}

func NewAuthController(users repository.UserStore) *AuthController {
	return &AuthController{Users: users}
}

type LoginInput struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128"`
}

// Login exchanges credentials for a JWT. Unknown users and wrong passwords
// get the same answer.
func (ac *AuthController) Login(ctx *gin.Context) {
	var input LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		utils.ValidationError(ctx, 42211, validationFields(input, err))
		return
	}

	user, err := ac.Users.GetByUsername(input.Username)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid credentials")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("load user username=%s failed: %v", input.Username, err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "login failed")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Sugar.Errorf("issue token user=%d failed: %v", user.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "login failed")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "not authenticated")
		return
	}

	user, err := ac.Users.GetByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "account no longer exists")
		return
	}
	if err != nil {
		utils.Sugar.Errorf("load user id=%d failed: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load profile")
		return
	}

	utils.Success(ctx, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

// Logout revokes the presented token for the rest of its lifetime.
func (ac *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
		return
	}
	token := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Respond(ctx, http.StatusOK, 0, "logged out", nil)
}
