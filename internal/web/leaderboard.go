package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/signlingo/backend/api"
	"github.com/signlingo/backend/internal/leaderboard"
	lf "github.com/signlingo/backend/internal/logfield"
)

type leaderboardService struct {
	webService
}

func setupLeaderboardService(server *server, r *gin.Engine) {
	s := leaderboardService{webService{server, server.config, server.logger}}

	r.GET("/api/leaderboard", s.getLeaderboard)
	r.GET("/api/leaderboard/my-rank", server.requireAuth, s.getMyRank)
}

func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// rankErrorStatus maps the engine's error kinds to HTTP codes without
// leaking store diagnostics.
func rankErrorStatus(err error) (int, string) {
	switch {
	case leaderboard.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, leaderboard.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	default:
		return http.StatusInternalServerError, "failed to query leaderboard"
	}
}

func (s leaderboardService) getLeaderboard(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Status{Error: "page must be an integer"})
		return
	}
	pageSize, ok := intQuery(c, "page_size", 10)
	if !ok {
		c.JSON(http.StatusBadRequest, api.Status{Error: "page_size must be an integer"})
		return
	}

	result, err := s.server.engine.GetPage(page, pageSize)
	if err != nil {
		status, message := rankErrorStatus(err)
		if status == http.StatusInternalServerError {
			s.server.requestLogger(c).Error("Leaderboard page failed",
				lf.Page(page), lf.PageSize(pageSize), zap.Error(err))
		}
		c.JSON(status, api.Status{Error: message})
		return
	}

	c.JSON(http.StatusOK, api.LeaderboardResponse{
		Status:   api.Status{Ok: true},
		Items:    result.Items,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (s leaderboardService) getMyRank(c *gin.Context) {
	identity := currentIdentity(c)

	entry, err := s.server.engine.GetUserRank(identity.ID)
	if err != nil {
		status, message := rankErrorStatus(err)
		if status == http.StatusInternalServerError {
			s.server.requestLogger(c).Error("Rank lookup failed", lf.UserID(identity.ID), zap.Error(err))
		}
		c.JSON(status, api.Status{Error: message})
		return
	}

	c.JSON(http.StatusOK, api.UserRankResponse{
		Status:      api.Status{Ok: true},
		RankedEntry: entry,
	})
}
