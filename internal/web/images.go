package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/signlingo/backend/api"
	lf "github.com/signlingo/backend/internal/logfield"
)

type imagesService struct {
	webService
}

func setupImagesService(server *server, r *gin.Engine) {
	s := imagesService{webService{server, server.config, server.logger}}

	r.GET("/api/images", s.getImageURL)
	r.GET("/api/images/list", s.listImages)
	r.GET("/api/images/health", s.health)
}

func (s imagesService) getImageURL(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		c.JSON(http.StatusBadRequest, api.Status{Error: "filename query parameter is required"})
		return
	}

	found, err := s.server.images.HasImage(filename)
	if err != nil {
		s.server.requestLogger(c).Error("Failed to check storage bucket",
			lf.Filename(filename), lf.Bucket(s.server.images.Bucket()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.Status{Error: "failed to query storage"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, api.Status{Error: "image not found"})
		return
	}

	c.JSON(http.StatusOK, api.ImageURLResponse{
		Status:   api.Status{Ok: true},
		Filename: filename,
		URL:      s.server.images.PublicURL(filename),
		Bucket:   s.server.images.Bucket(),
	})
}

func (s imagesService) listImages(c *gin.Context) {
	names, err := s.server.images.ListImages()
	if err != nil {
		s.server.requestLogger(c).Error("Failed to list storage bucket",
			lf.Bucket(s.server.images.Bucket()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.Status{Error: "failed to list images"})
		return
	}

	c.JSON(http.StatusOK, api.ImageListResponse{
		Status: api.Status{Ok: true},
		Bucket: s.server.images.Bucket(),
		Count:  len(names),
		Images: names,
	})
}

func (s imagesService) health(c *gin.Context) {
	c.JSON(http.StatusOK, api.ServiceHealthResponse{
		Status:     api.Status{Ok: true},
		Service:    "images",
		Configured: true,
	})
}
