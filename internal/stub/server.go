// Package stub is a development stand-in for the intake backend. It serves
// the catalogue from a JSON file and stores project submissions in an inbox.
package stub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Dallionking/project-estimator/internal/catalogue"
	"github.com/Dallionking/project-estimator/internal/inbox"
	"github.com/Dallionking/project-estimator/internal/intake"
)

// maxBody caps the size of a submission request.
const maxBody = 1 << 20

// Server routes the catalogue and contact endpoints.
type Server struct {
	catalogue catalogue.Provider
	inbox     *inbox.Inbox
	log       zerolog.Logger
	router    chi.Router
}

// NewServer wires the routes.
func NewServer(cat catalogue.Provider, in *inbox.Inbox, log zerolog.Logger) *Server {
	s := &Server{catalogue: cat, inbox: in, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/health", s.handleHealth)
	r.Get(catalogue.DefaultPath, s.handleCatalogue)
	r.Post(intake.DefaultPath, s.handleContact)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("stub backend listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("stub backend shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "estimator-stub",
	})
}

func (s *Server) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	cat, err := s.catalogue.Fetch(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("catalogue unavailable")
		writeMessage(w, http.StatusServiceUnavailable, "Service catalogue is unavailable")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	raw := json.RawMessage{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&raw); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var p intake.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := checkPayload(p); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	sub, err := s.inbox.Push(inbox.Submission{
		ClientName:     p.ClientName,
		Email:          p.Email,
		ProjectName:    p.ProjectName,
		EstimatedTotal: string(p.EstimatedTotal),
		Payload:        raw,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("storing submission")
		writeMessage(w, http.StatusInternalServerError, "Failed to submit project details")
		return
	}

	s.log.Info().
		Str("id", sub.ID).
		Str("client", sub.ClientName).
		Str("project", sub.ProjectName).
		Str("total", sub.EstimatedTotal).
		Msg("project submission received")
	writeJSON(w, http.StatusCreated, map[string]string{"id": sub.ID})
}

// checkPayload returns a user-facing message for a request the intake
// endpoint would refuse.
func checkPayload(p intake.Payload) string {
	switch {
	case p.Type != intake.TypeProject:
		return "Unsupported request type"
	case strings.TrimSpace(p.ClientName) == "":
		return "Client name is required"
	case strings.TrimSpace(p.Email) == "":
		return "Email is required"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
