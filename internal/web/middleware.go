package web

import (
	"net/http"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	sessionUserKey = "uid"
	contextUserKey = "user"
)

// resolveIdentity loads the session user, if any, and stashes it on
// the request context. Identity is resolved once here; handlers only
// ever see the already-resolved user.
func (s *Server) resolveIdentity(c *gin.Context) {

	session := sessions.Default(c)

	raw, ok := session.Get(sessionUserKey).(string)
	if !ok || raw == "" {
		c.Next()
		return
	}

	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		// stale or tampered cookie, drop it
		session.Delete(sessionUserKey)
		_ = session.Save()
		c.Next()
		return
	}

	user, err := s.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Next()
		return
	}

	c.Set(contextUserKey, user)
	c.Next()
}

// requireAuth rejects requests without a resolved identity.
func (s *Server) requireAuth(c *gin.Context) {
	if currentUser(c) == nil {
		c.Redirect(http.StatusFound, "/iniciar-sesion")
		c.Abort()
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	return value.(*models.User)
}
