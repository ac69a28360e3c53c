package web

import (
	"net/http"

	"github.com/devjobs/board/internal/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) registerForm(c *gin.Context) {
	s.render(c, http.StatusOK, "crear-cuenta.html", gin.H{
		"NombrePagina": "Crea tu cuenta en devJobs",
		"Tagline":      "Comienza a publicar tus vacantes gratis, solo debes crear una cuenta",
	})
}

func (s *Server) register(c *gin.Context) {

	input := services.RegisterInput{
		Name:     c.PostForm("nombre"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Confirm:  c.PostForm("confirmar"),
	}

	if _, err := s.accounts.Register(c.Request.Context(), input); err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/crear-cuenta")
		return
	}

	c.Redirect(http.StatusFound, "/iniciar-sesion")
}

func (s *Server) adminPanel(c *gin.Context) {

	user := currentUser(c)

	postings, err := s.postings.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		postings = nil
	}

	s.render(c, http.StatusOK, "administracion.html", gin.H{
		"NombrePagina": "Panel de Administración",
		"Tagline":      "Crea y Administra tus vacantes desde aquí",
		"Vacantes":     postings,
	})
}

func (s *Server) editProfileForm(c *gin.Context) {
	s.render(c, http.StatusOK, "editar-perfil.html", gin.H{
		"NombrePagina": "Edita tu perfil en devJobs",
	})
}

func (s *Server) editProfile(c *gin.Context) {

	user := currentUser(c)

	input := services.ProfileInput{
		Name:     c.PostForm("nombre"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	file, header, err := c.Request.FormFile("imagen")
	if err == nil {
		defer file.Close()

		filename, err := s.imageUploads.Accept(file, header.Header.Get("Content-Type"), header.Size)
		if err != nil {
			addFlash(c, flashError, userMessage(err))
			c.Redirect(http.StatusFound, "/administracion")
			return
		}
		input.Image = filename
	}

	if _, err := s.accounts.UpdateProfile(c.Request.Context(), user.ID, input); err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/editar-perfil")
		return
	}

	addFlash(c, flashOk, "Cambios Guardados Correctamente")
	c.Redirect(http.StatusFound, "/administracion")
}
