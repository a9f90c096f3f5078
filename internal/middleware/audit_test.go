package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

// auditedPost sends a POST through the audit middleware as a logged-in user.
func auditedPost(t *testing.T, db *gorm.DB, path, body string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("currentUser", &models.User{ID: 1})
	})
	r.Use(AuditMiddleware(db))
	r.POST(path, func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuditRecordsBodySnapshot(t *testing.T) {
	db := newAuditTestDB(t)

	auditedPost(t, db, "/api/categories", `{"name":"Books"}`)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/categories", entry.Path)
	assert.Contains(t, entry.Action, `"Books"`)
	assert.NotEmpty(t, entry.RequestID)
}

func TestAuditNeverStoresCredentialBodies(t *testing.T) {
	db := newAuditTestDB(t)

	auditedPost(t, db, "/api/profile/password",
		`{"old_password":"OldSecret1","new_password":"NewSecret1"}`)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "POST /api/profile/password", entry.Action)
	assert.NotContains(t, entry.Action, "OldSecret1")
	assert.NotContains(t, entry.Action, "NewSecret1")
}

func TestAuditSkipsAnonymousRequests(t *testing.T) {
	db := newAuditTestDB(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuditMiddleware(db))
	r.POST("/api/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}
