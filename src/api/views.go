package api

import (
	"net/http"
	"time"

	"dashboard/src/api/handlers"
	"dashboard/src/config"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/funds", func(r chi.Router) {
		r.Get("/", s.Handler.GetAllFunds)
		r.Get("/{fund}/summary", s.Handler.GetFundSummary)
		r.Get("/{fund}/returns", s.Handler.GetFundReturns)
		r.Get("/{fund}/delinquency", s.Handler.GetFundDelinquency)
		r.Get("/{fund}/aging", s.Handler.GetFundAging)
		r.Get("/{fund}/covenants", s.Handler.GetFundCovenants)
		r.Get("/{fund}/dashboard", s.Handler.GetFundDashboard)
		r.Get("/{fund}/report", s.Handler.GetFundReportFile)
	})

	s.Router.Get("/api/macro", s.Handler.GetMacroSeries)
	s.Router.Delete("/api/cache", s.Handler.ClearCache)
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
	return httpServer
}
