package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/signlingo/backend/api"
	lf "github.com/signlingo/backend/internal/logfield"
	"github.com/signlingo/backend/internal/signs"
)

type signsService struct {
	webService

	maxImageBytes int64
}

func setupSignsService(server *server, r *gin.Engine) error {
	maxImageBytes, err := server.config.MaxImageBytes()
	if err != nil {
		return err
	}
	s := signsService{webService{server, server.config, server.logger}, maxImageBytes}

	r.POST("/api/asl/analyze", server.requireAuth, s.analyze)
	r.GET("/api/asl/health", server.requireAuth, s.health)

	return nil
}

func (s signsService) analyze(c *gin.Context) {
	letterRange := c.PostForm("letter_range")

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Status{Error: "image file is required"})
		return
	}
	if header.Size > s.maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, api.Status{Error: "image is too large"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, api.Status{Error: "file must be an image"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Status{Error: "failed to read image"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, s.maxImageBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Status{Error: "failed to read image"})
		return
	}

	identity := currentIdentity(c)
	verdict, err := s.server.analyzer.Analyze(c.Request.Context(), imageData, letterRange)
	if err != nil {
		switch {
		case errors.Is(err, signs.ErrInvalidLetterRange), errors.Is(err, signs.ErrInvalidImage):
			c.JSON(http.StatusBadRequest, api.Status{Error: err.Error()})
		default:
			s.server.requestLogger(c).Error("Sign analysis failed",
				lf.UserID(identity.ID), lf.LetterRange(letterRange), zap.Error(err))
			c.JSON(http.StatusInternalServerError, api.Status{Error: "failed to analyze sign"})
		}
		return
	}

	c.JSON(http.StatusOK, api.AnalyzeResponse{
		Status:      api.Status{Ok: true},
		Analysis:    verdict,
		LetterRange: letterRange,
		UserID:      identity.ID,
		Model:       s.server.analyzer.Model(),
	})
}

func (s signsService) health(c *gin.Context) {
	c.JSON(http.StatusOK, api.ServiceHealthResponse{
		Status:     api.Status{Ok: true},
		Service:    "asl-analysis",
		Configured: true,
	})
}
