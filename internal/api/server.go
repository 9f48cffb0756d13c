package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventcal/internal/config"
	"eventcal/internal/repository"
)

// Server wraps the web server.
type Server struct {
	handler *Handler
	router  *gin.Engine
}

// NewServer creates the router and wires all routes. Event routes sit behind
// the session guard; anonymous requests to them redirect to the login page.
func NewServer(cfg *config.Config, users repository.Users, events repository.Events) *Server {
	handler := NewHandler(users, events, cfg)

	// gin.New() instead of gin.Default() so the log format stays under our
	// control.
	router := gin.New()
	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.ClientIP,
			param.Method,
			param.StatusCode,
			param.Latency,
			param.Path,
			param.ErrorMessage,
		)
	}))
	router.Use(gin.Recovery())

	router.SetHTMLTemplate(loadTemplates())

	// Public auth endpoints
	router.GET("/register", handler.ShowRegister)
	router.POST("/register", handler.Register)
	router.GET("/login", handler.ShowLogin)
	router.POST("/login", handler.Login)

	// Protected calendar endpoints
	protected := router.Group("")
	protected.Use(RequireUser(users, []byte(cfg.Session.Secret)))
	{
		protected.GET("/", handler.Index)
		protected.GET("/logout", handler.Logout)
		protected.GET("/add", handler.ShowAdd)
		protected.POST("/add", handler.AddEvent)
		protected.GET("/edit/:id", handler.ShowEdit)
		protected.POST("/edit/:id", handler.UpdateEvent)
		protected.POST("/delete/:id", handler.DeleteEvent)
		protected.GET("/export.ics", handler.ExportICS)
	}

	return &Server{
		handler: handler,
		router:  router,
	}
}

// GetRouter returns the router.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
