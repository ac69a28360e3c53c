package web

import (
	"errors"
	"net/http"

	"github.com/devjobs/board/internal/domain/models"
	"github.com/devjobs/board/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *Server) home(c *gin.Context) {

	postings, err := s.postings.ListAll(c.Request.Context())
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		postings = nil
	}

	s.render(c, http.StatusOK, "home.html", gin.H{
		"NombrePagina": "devJobs",
		"Tagline":      "Encuentra y Publica trabajos para Desarrolladores Web",
		"Vacantes":     postings,
	})
}

func (s *Server) newPostingForm(c *gin.Context) {
	s.render(c, http.StatusOK, "nueva-vacante.html", gin.H{
		"NombrePagina": "Nueva Vacante",
		"Tagline":      "Llena el formulario y publica tu vacante",
	})
}

func postingInputFromForm(c *gin.Context) services.PostingInput {
	return services.PostingInput{
		Title:       c.PostForm("titulo"),
		Company:     c.PostForm("empresa"),
		Location:    c.PostForm("ubicacion"),
		Contract:    c.PostForm("contrato"),
		Description: c.PostForm("descripcion"),
		Skills:      c.PostForm("skills"),
	}
}

func (s *Server) createPosting(c *gin.Context) {

	user := currentUser(c)

	posting, err := s.postings.Create(c.Request.Context(), user.ID, postingInputFromForm(c))
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/vacantes/nueva")
		return
	}

	c.Redirect(http.StatusFound, "/vacantes/"+posting.Slug)
}

func (s *Server) showPosting(c *gin.Context) {

	posting, err := s.postings.GetBySlug(c.Request.Context(), c.Param("url"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.render(c, http.StatusNotFound, "error.html", gin.H{"Status": 404, "Message": "No Encontrado"})
			return
		}
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/")
		return
	}

	s.render(c, http.StatusOK, "vacante.html", gin.H{
		"NombrePagina": posting.Title,
		"Vacante":      posting,
	})
}

func (s *Server) editPostingForm(c *gin.Context) {

	posting, err := s.postings.GetBySlug(c.Request.Context(), c.Param("url"))
	if err != nil {
		s.render(c, http.StatusNotFound, "error.html", gin.H{"Status": 404, "Message": "No Encontrado"})
		return
	}

	s.render(c, http.StatusOK, "editar-vacante.html", gin.H{
		"NombrePagina": "Editar - " + posting.Title,
		"Vacante":      posting,
	})
}

func (s *Server) updatePosting(c *gin.Context) {

	user := currentUser(c)
	slug := c.Param("url")

	posting, err := s.postings.Update(c.Request.Context(), slug, user.ID, postingInputFromForm(c))
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			c.String(http.StatusForbidden, "Error")
			return
		}
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/vacantes/editar/"+slug)
		return
	}

	c.Redirect(http.StatusFound, "/vacantes/"+posting.Slug)
}

func (s *Server) deletePosting(c *gin.Context) {

	user := currentUser(c)

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "No Encontrado")
		return
	}

	if err := s.postings.Delete(c.Request.Context(), id, user.ID); err != nil {
		if errors.Is(err, models.ErrForbidden) {
			c.String(http.StatusForbidden, "Error")
			return
		}
		c.String(http.StatusNotFound, "No Encontrado")
		return
	}

	c.String(http.StatusOK, "Vacante Eliminada Correctamente")
}

func (s *Server) apply(c *gin.Context) {

	slug := c.Param("url")

	file, header, err := c.Request.FormFile("cv")
	if err != nil {
		addFlash(c, flashError, "Agrega tu Curriculum en PDF")
		c.Redirect(http.StatusFound, "/vacantes/"+slug)
		return
	}
	defer file.Close()

	filename, err := s.cvUploads.Accept(file, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/vacantes/"+slug)
		return
	}

	input := services.CandidateInput{
		Name:  c.PostForm("nombre"),
		Email: c.PostForm("email"),
		CV:    filename,
	}

	if err := s.postings.Apply(c.Request.Context(), slug, input); err != nil {
		addFlash(c, flashError, userMessage(err))
		c.Redirect(http.StatusFound, "/vacantes/"+slug)
		return
	}

	addFlash(c, flashOk, "Se envió tu Curriculum Correctamente")
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) candidates(c *gin.Context) {

	user := currentUser(c)

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		s.render(c, http.StatusNotFound, "error.html", gin.H{"Status": 404, "Message": "No Encontrado"})
		return
	}

	posting, err := s.postings.Candidates(c.Request.Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrForbidden) {
			s.render(c, http.StatusForbidden, "error.html", gin.H{"Status": 403, "Message": "No tienes permiso"})
			return
		}
		s.render(c, http.StatusNotFound, "error.html", gin.H{"Status": 404, "Message": "No Encontrado"})
		return
	}

	s.render(c, http.StatusOK, "candidatos.html", gin.H{
		"NombrePagina": "Candidatos Vacante - " + posting.Title,
		"Candidatos":   posting.Candidates,
	})
}

func (s *Server) search(c *gin.Context) {

	query := c.PostForm("q")

	postings, err := s.postings.Search(c.Request.Context(), query)
	if err != nil {
		addFlash(c, flashError, userMessage(err))
		postings = nil
	}

	s.render(c, http.StatusOK, "home.html", gin.H{
		"NombrePagina": "Resultados para la búsqueda : " + query,
		"Vacantes":     postings,
	})
}
