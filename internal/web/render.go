package web

import (
	"errors"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/logger"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	flashError = "error"
	flashOk    = "correcto"
)

func addFlash(c *gin.Context, kind string, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	_ = session.Save()
}

func takeFlashes(c *gin.Context, kind string) []string {
	session := sessions.Default(c)
	raw := session.Flashes(kind)
	_ = session.Save()

	messages := make([]string, 0, len(raw))
	for _, value := range raw {
		if msg, ok := value.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// render wraps HTML rendering so every page sees the signed-in user
// and any pending flash messages.
func (s *Server) render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["Errores"] = takeFlashes(c, flashError)
	data["Correctos"] = takeFlashes(c, flashOk)

	if user := currentUser(c); user != nil {
		data["Usuario"] = user
	}

	c.HTML(status, template, data)
}

// userMessage maps core errors to the message shown at the boundary.
// Anything unrecognized is a store/internal failure: it gets logged
// and hidden behind a generic message.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrValidation):
		return "Revisa el formulario, hay campos obligatorios sin llenar o invalidos"
	case errors.Is(err, models.ErrDuplicateEmail):
		return "Ese correo ya esta registrado"
	case errors.Is(err, models.ErrDuplicateSlug):
		return "No se pudo generar una URL para la vacante, intenta otro titulo"
	case errors.Is(err, models.ErrInvalidCredentials):
		return "Email o Password incorrectos"
	case errors.Is(err, models.ErrInvalidOrExpiredToken):
		return "El formulario ya no es valido, intenta de nuevo"
	case errors.Is(err, models.ErrForbidden):
		return "No tienes permiso para esa accion"
	case errors.Is(err, models.ErrNotFound):
		return "No Encontrado"
	case errors.Is(err, models.ErrFileTooLarge):
		return "El archivo es muy grande: Máximo 100kb"
	case errors.Is(err, models.ErrUnsupportedType):
		return "Formato No Válido"
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("request failed: %v", err)
		return "Ocurrió un error, intenta de nuevo"
	}
}
