// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/models"
)

// RequestLogger logs every request with latency and status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		entry := logrus.WithFields(logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
		})

		if status >= 500 {
			entry.Error("request failed")
		} else if status >= 400 {
			entry.Warn("request rejected")
		} else {
			entry.Info("request completed")
		}
	}
}

// AuditLog records mutating admin actions after the handler runs. Writes
// happen off the request goroutine so a slow audit insert never delays
// the response.
func AuditLog(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == "GET" || c.Writer.Status() >= 400 {
			return
		}

		adminID, exists := c.Get("admin_id")
		if !exists {
			return
		}
		raw, ok := adminID.(string)
		if !ok {
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return
		}

		entry := models.AuditLog{
			AdminID:      &id,
			Action:       c.Request.Method,
			ResourceType: c.FullPath(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}
		if resourceID, err := uuid.Parse(c.Param("id")); err == nil {
			entry.ResourceID = &resourceID
		}

		// Handlers have already parsed the form by the time this runs, so
		// the snapshot costs no extra body read. JSON bodies are consumed
		// by binding and are not re-captured.
		if form := c.Request.PostForm; len(form) > 0 {
			snapshot := models.JSONB{}
			for key := range form {
				snapshot[key] = form.Get(key)
			}
			entry.NewValues = snapshot
		}

		go func() {
			if err := db.Create(&entry).Error; err != nil {
				logrus.WithError(err).Warn("failed to write audit log")
			}
		}()
	}
}
