// Package devserver is an in-memory implementation of the remote store's
// HTTP contract. It backs local development and the end-to-end tests.
package devserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/render"
)

// Options configures a Server.
type Options struct {
	Port int
	// Tokens maps accepted bearer tokens to user ids.
	Tokens    map[string]string
	Generator Generator
	Renderer  render.Renderer
}

// Server serves the job application and profile routes.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	listener   net.Listener
	port       int

	tokens   map[string]string
	data     *memStore
	gen      Generator
	renderer render.Renderer
	log      *logger.Logger
}

// New creates a server. A nil Generator uses TemplateGenerator and a nil
// Renderer uses the placeholder PDF.
func New(opts Options) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		port:     opts.Port,
		tokens:   opts.Tokens,
		data:     newMemStore(),
		gen:      opts.Generator,
		renderer: opts.Renderer,
		log:      logger.Get().Component("devserver"),
	}
	if s.tokens == nil {
		s.tokens = map[string]string{}
	}
	if s.gen == nil {
		s.gen = TemplateGenerator{}
	}
	if s.renderer == nil {
		s.renderer = render.Placeholder{}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router.Route("/job-applications", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/", s.createManual)
		r.Post("/from-link", s.createFromLink)
		r.Get("/my-applications", s.listApplications)
		r.Get("/my-applications/summary", s.summary)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getApplication)
			r.Delete("/", s.deleteApplication)
			r.Patch("/status", s.updateStatus)

			r.Post("/notes", s.addNote)
			r.Patch("/notes/{noteID}", s.updateNote)
			r.Delete("/notes/{noteID}", s.deleteNote)

			r.Post("/cover-letter", s.generateCoverLetter)
			r.Patch("/cover-letter", s.saveCoverLetter)

			r.Post("/ai-cv", s.generateAiCv)
			r.Put("/ai-cv", s.saveAiCv)
			r.Get("/ai-cv/pdf", s.downloadAiCvPdf)
		})
	})

	s.router.Route("/profile/my-profile", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/", s.getProfile)
		r.Post("/", s.saveProfile)
		r.Post("/cv", s.uploadCV)
	})
}

// Handler exposes the router, for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and serves until Stop.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Str("addr", listener.Addr().String()).Msg("dev server listening")
	return s.httpServer.Serve(listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// BaseURL returns the server's base URL.
func (s *Server) BaseURL() string {
	if s.listener != nil {
		return fmt.Sprintf("http://%s", s.listener.Addr().String())
	}
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
