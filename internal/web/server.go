package web

import (
	"github.com/devjobs/board/internal/config"
	"github.com/devjobs/board/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

type Server struct {
	engine       *gin.Engine
	accounts     *services.Accounts
	resets       *services.PasswordReset
	postings     *services.Postings
	imageUploads *services.Uploads
	cvUploads    *services.Uploads
	cfg          config.ServerConfig
}

func NewServer(cfg config.ServerConfig, uploadsDir string, accounts *services.Accounts,
	resets *services.PasswordReset, postings *services.Postings,
	imageUploads *services.Uploads, cvUploads *services.Uploads) *Server {

	s := &Server{
		engine:       gin.New(),
		accounts:     accounts,
		resets:       resets,
		postings:     postings,
		imageUploads: imageUploads,
		cvUploads:    cvUploads,
		cfg:          cfg,
	}

	s.engine.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	s.engine.Use(sessions.Sessions("devjobs", store))
	s.engine.Use(s.resolveIdentity)

	s.engine.LoadHTMLGlob("templates/*.html")
	s.engine.Static("/uploads", uploadsDir)
	s.engine.Static("/static", "./public/static")

	s.routes()
	return s
}

func (s *Server) routes() {

	r := s.engine

	r.GET("/", s.home)

	r.GET("/crear-cuenta", s.registerForm)
	r.POST("/crear-cuenta", s.register)

	r.GET("/iniciar-sesion", s.loginForm)
	r.POST("/iniciar-sesion", s.login)
	r.GET("/cerrar-sesion", s.requireAuth, s.logout)

	r.GET("/reestablecer-password", s.resetRequestForm)
	r.POST("/reestablecer-password", s.resetRequest)
	r.GET("/reestablecer-password/:token", s.newPasswordForm)
	r.POST("/reestablecer-password/:token", s.newPassword)

	r.GET("/administracion", s.requireAuth, s.adminPanel)
	r.GET("/editar-perfil", s.requireAuth, s.editProfileForm)
	r.POST("/editar-perfil", s.requireAuth, s.editProfile)

	r.GET("/vacantes/nueva", s.requireAuth, s.newPostingForm)
	r.POST("/vacantes/nueva", s.requireAuth, s.createPosting)
	r.GET("/vacantes/:url", s.showPosting)
	r.POST("/vacantes/:url", s.apply)
	r.GET("/vacantes/editar/:url", s.requireAuth, s.editPostingForm)
	r.POST("/vacantes/editar/:url", s.requireAuth, s.updatePosting)
	r.DELETE("/vacantes/eliminar/:id", s.requireAuth, s.deletePosting)

	r.GET("/candidatos/:id", s.requireAuth, s.candidates)

	r.POST("/buscador", s.search)

	r.NoRoute(func(c *gin.Context) {
		s.render(c, 404, "error.html", gin.H{"Status": 404, "Message": "No Encontrado"})
	})
}

func (s *Server) Run() error {
	return s.engine.Run(s.cfg.Address)
}
