package middleware

import (
	"bytes"
	"io"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAuditBody = 2000

// bodies on these routes carry credentials; only method and path are recorded
var credentialPaths = map[string]bool{
	"/api/auth/register":    true,
	"/api/auth/login":       true,
	"/api/auth/refresh":     true,
	"/api/profile/password": true,
}

// AuditMiddleware records every authenticated request (method, path, a
// truncated body snapshot, client address) with a per-request id.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		var bodyBytes []byte
		if c.Request.Body != nil && !credentialPaths[c.Request.URL.Path] {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		// only record operations of logged-in users
		if userID == 0 {
			return
		}

		action := c.Request.Method + " " + c.Request.URL.Path
		if len(bodyBytes) > 0 && len(bodyBytes) < maxAuditBody {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			RequestID: requestID,
			UserID:    &userID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
