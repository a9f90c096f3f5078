package handler

import (
	"net/http"
	"strings"

	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetMe returns the current authenticated user.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"username":   user.Username,
			"full_name":  user.FullName,
			"is_active":  user.IsActive,
			"created_at": user.CreatedAt,
		},
	})
}

type updateProfileReq struct {
	FullName *string `json:"full_name"`
}

// UpdateProfile changes the display name. Only fields present in the payload
// are touched.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		if req.FullName != nil {
			name := strings.TrimSpace(*req.FullName)
			if err := db.Model(user).Update("full_name", name).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
				return
			}
			user.FullName = name
		}

		util.Success(c, util.Response{
			"user": gin.H{
				"id":        user.ID,
				"email":     user.Email,
				"username":  user.Username,
				"full_name": user.FullName,
			},
		})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword verifies the old password and stores a new hash.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "old password is incorrect")
			return
		}
		if !util.IsStrongPassword(req.NewPassword) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
				"password must be 8-32 chars with upper, lower and digit")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
			return
		}
		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update failed")
			return
		}

		util.Success(c, util.Response{
			"message": "password changed, please log in again",
		})
	}
}

// Deactivate soft-disables the account. Data is retained and the account is
// restored by the next successful login.
func Deactivate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		if err := db.Model(user).Update("is_active", false).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "deactivation failed")
			return
		}

		util.Success(c, util.Response{
			"message": "account deactivated, log in again to restore it",
		})
	}
}
