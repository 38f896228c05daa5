package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/signlingo/backend/api"
	lf "github.com/signlingo/backend/internal/logfield"
	"github.com/signlingo/backend/internal/models"
)

type profileService struct {
	webService
}

func setupProfileService(server *server, r *gin.Engine) {
	s := profileService{webService{server, server.config, server.logger}}

	r.GET("/api/profile", server.requireAuth, s.profile)
	r.POST("/api/progress", server.requireAuth, s.saveProgress)
	r.GET("/api/public", server.optionalAuth, s.publicInfo)
}

func (s profileService) profile(c *gin.Context) {
	record := currentRecord(c)
	identity := currentIdentity(c)

	c.JSON(http.StatusOK, api.ProfileResponse{
		Status:    api.Status{Ok: true},
		ID:        record.ID,
		Email:     identity.Email,
		Username:  record.Username,
		Avatar:    record.Avatar,
		Score:     record.Score,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	})
}

// saveProgress records a completed lesson and credits its score. This is the
// progress-recording collaborator: the only writer of the score column.
func (s profileService) saveProgress(c *gin.Context) {
	identity := currentIdentity(c)

	req := api.ProgressRequest{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Status{Error: err.Error()})
		return
	}
	if req.UserID != "" && req.UserID != identity.ID {
		c.JSON(http.StatusForbidden, api.Status{Error: "cannot save progress for another user"})
		return
	}
	if req.Module == "" || req.Lesson == "" {
		c.JSON(http.StatusBadRequest, api.Status{Error: "module and lesson are required"})
		return
	}
	if req.Score < 0 {
		c.JSON(http.StatusBadRequest, api.Status{Error: "score must be non-negative"})
		return
	}

	total, err := s.server.db.AddScore(identity.ID, &models.LessonProgress{
		UserID:      identity.ID,
		Module:      req.Module,
		Lesson:      req.Lesson,
		Score:       req.Score,
		CompletedAt: time.Now(),
	})
	if err != nil {
		s.server.requestLogger(c).Error("Failed to save progress", lf.UserID(identity.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.Status{Error: "failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, api.ProgressResponse{
		Status:     api.Status{Ok: true},
		TotalScore: total,
	})
}

func (s profileService) publicInfo(c *gin.Context) {
	if identity := currentIdentity(c); identity != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Hello authenticated user!", "user_id": identity.ID, "is_authenticated": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hello guest user!", "is_authenticated": false})
}
