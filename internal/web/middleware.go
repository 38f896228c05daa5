package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/signlingo/backend/api"
	"github.com/signlingo/backend/internal/auth"
	lf "github.com/signlingo/backend/internal/logfield"
	"github.com/signlingo/backend/internal/models"
)

const (
	identityKey = "auth_identity"
	recordKey   = "auth_record"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// requireAuth verifies the bearer token and makes sure a score record exists
// for the subject. Registration happens here: the first authenticated
// request creates the record with score 0.
func (s *server) requireAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Status{Error: "missing bearer token"})
		return
	}

	identity, err := s.verifier.Verify(token)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.Status{Error: "invalid or expired token"})
		return
	}

	user, err := s.db.AddUser(&models.User{
		ID:       identity.ID,
		Username: identity.Username(),
		Email:    identity.Email,
	})
	if err != nil {
		s.requestLogger(c).Error("Failed to ensure score record", lf.UserID(identity.ID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.Status{Error: "internal error"})
		return
	}

	c.Set(identityKey, identity)
	c.Set(recordKey, user)
	c.Next()
}

// optionalAuth attaches the identity when a valid token is present and
// stays silent otherwise.
func (s *server) optionalAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.Next()
		return
	}
	identity, err := s.verifier.Verify(token)
	if err != nil {
		c.Next()
		return
	}
	c.Set(identityKey, identity)
	c.Next()
}

func currentIdentity(c *gin.Context) *auth.Identity {
	if value, ok := c.Get(identityKey); ok {
		return value.(*auth.Identity)
	}
	return nil
}

func currentRecord(c *gin.Context) *models.User {
	if value, ok := c.Get(recordKey); ok {
		return value.(*models.User)
	}
	return nil
}
