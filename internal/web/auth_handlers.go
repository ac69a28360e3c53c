package web

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (s *Server) loginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "iniciar-sesion.html", gin.H{
		"NombrePagina": "Iniciar Sesión devJobs",
	})
}

func (s *Server) login(c *gin.Context) {

	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		addFlash(c, flashError, "Ambos campos son obligatorios")
		c.Redirect(http.StatusFound, "/iniciar-sesion")
		return
	}

	user, err := s.accounts.Authenticate(c.Request.Context(), email, password)
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/iniciar-sesion")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID.Hex())
	if err := session.Save(); err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/iniciar-sesion")
		return
	}

	c.Redirect(http.StatusFound, "/administracion")
}

func (s *Server) logout(c *gin.Context) {

	session := sessions.Default(c)
	session.Delete(sessionUserKey)
	_ = session.Save()

	addFlash(c, flashOk, "Cerraste Sesión Correctamente")
	c.Redirect(http.StatusFound, "/iniciar-sesion")
}

func (s *Server) resetRequestForm(c *gin.Context) {
	s.render(c, http.StatusOK, "reestablecer-password.html", gin.H{
		"NombrePagina": "Reestablece tu Password",
		"Tagline":      "Si ya tienes una cuenta pero olvidaste tu password, coloca tu email",
	})
}

func (s *Server) resetRequest(c *gin.Context) {

	err := s.resets.Request(c.Request.Context(), c.PostForm("email"))
	if err != nil {
		// same generic message whether or not the account exists
		addFlash(c, flashError, "No existe esa cuenta")
		c.Redirect(http.StatusFound, "/iniciar-sesion")
		return
	}

	addFlash(c, flashOk, "Revisa tu email para las indicaciones")
	c.Redirect(http.StatusFound, "/iniciar-sesion")
}

func (s *Server) newPasswordForm(c *gin.Context) {

	token := c.Param("token")

	if err := s.resets.Validate(c.Request.Context(), token); err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/reestablecer-password")
		return
	}

	s.render(c, http.StatusOK, "nuevo-password.html", gin.H{
		"NombrePagina": "Nuevo Password",
		"Token":        token,
	})
}

func (s *Server) newPassword(c *gin.Context) {

	token := c.Param("token")

	err := s.resets.Reset(c.Request.Context(), token, c.PostForm("password"))
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/reestablecer-password")
		return
	}

	addFlash(c, flashOk, "Password Modificado Correctamente")
	c.Redirect(http.StatusFound, "/iniciar-sesion")
}
