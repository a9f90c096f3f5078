package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"
	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and token refresh.
type AuthHandler struct {
	Store      *store.Store
	JWTSecret  string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

func NewAuthHandler(s *store.Store, jwtSecret, issuer string, accessMinutes, refreshHours, bcryptCost int) *AuthHandler {
	if accessMinutes <= 0 {
		accessMinutes = 30
	}
	if refreshHours <= 0 {
		refreshHours = 7 * 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AuthHandler{
		Store:      s,
		JWTSecret:  jwtSecret,
		Issuer:     issuer,
		AccessTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTTL: time.Duration(refreshHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

func (h *AuthHandler) issueTokens(userID uint) (string, string, error) {
	access, err := util.GenerateToken(h.JWTSecret, h.Issuer, userID, util.TokenAccess, h.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := util.GenerateToken(h.JWTSecret, h.Issuer, userID, util.TokenRefresh, h.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"full_name": u.FullName,
		"is_active": u.IsActive,
	}
}

// ---------- register ----------

type registerReq struct {
	Email           string `json:"email" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FullName        string `json:"full_name" binding:"max=128"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if !util.IsStrongPassword(req.Password) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"password must be 8-32 chars with upper, lower and digit")
		return
	}
	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	// case-insensitive uniqueness on both identifiers
	var count int64
	if err := h.Store.DB.Model(&models.User{}).
		Where("LOWER(email) = ? OR LOWER(username) = LOWER(?)", req.Email, req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check user")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "email or username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	// user row and default category seed commit together
	if err := h.Store.RegisterUser(&user); err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "registered",
		"user":    userJSON(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.Store.DB.Where("LOWER(email) = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account temporarily locked, try again later")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		// five consecutive failures lock the account for ten minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		if err := h.Store.DB.Save(&user).Error; err != nil {
			log.Printf("login: record failed attempt for user %d: %v", user.ID, err)
		}
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now
	// a successful login reactivates a soft-deactivated account
	user.IsActive = true
	if err := h.Store.DB.Save(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update login state")
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sign token")
		return
	}

	util.Success(c, util.Response{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          userJSON(&user),
	})
}

// ---------- refresh ----------

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	claims, err := util.ParseToken(h.JWTSecret, req.RefreshToken, util.TokenRefresh)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid refresh token")
		return
	}

	var user models.User
	if err := h.Store.DB.First(&user, claims.UserID).Error; err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user no longer exists")
		return
	}
	if !user.IsActive {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account is deactivated")
		return
	}

	access, refresh, err := h.issueTokens(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to sign token")
		return
	}

	util.Success(c, util.Response{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
