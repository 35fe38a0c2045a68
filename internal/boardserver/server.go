// Package boardserver is a local stand-in for the remote board resource:
//
//	GET  /board       list every item
//	GET  /board/{id}  one item
//	POST /board       create from a draft, the server assigns the id
//	PUT  /board/{id}  partial update; only {"status": true} has an effect
//
// It exists for development and integration tests of the client.
package boardserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/lostboard/internal/model"
)

const maxBodyBytes = 1 << 20

type Server struct {
	repo  Repository
	log   logrus.FieldLogger
	newID func() string
}

func New(repo Repository, log logrus.FieldLogger) *Server {
	return &Server{
		repo:  repo,
		log:   log.WithField("component", "boardserver"),
		newID: uuid.NewString,
	}
}

// Handler mounts the collection at /board.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Browser clients of the board call this from another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.requestLogger)

	r.Route("/board", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
	})
	return r
}

// ListenAndServe runs until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("board server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.log.Info("board server stopped")
		return nil
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	it, err := s.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var d model.Draft
	if err := decodeBody(w, r, &d); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if err := d.Validate(); err != nil {
		fe, _ := model.AsFieldErrors(err)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fe})
		return
	}

	it := d.WithID(s.newID())
	if err := s.repo.Create(r.Context(), it); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.log.WithField("id", it.ID).Info("item created")
	writeJSON(w, http.StatusCreated, it)
}

// update applies a partial body. Every field other than status is immutable
// after creation and is ignored.
func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Status *model.Status `json:"status"`
	}
	if err := decodeBody(w, r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	status := model.StatusActive
	if patch.Status != nil {
		status = *patch.Status
	}
	it, err := s.repo.SetStatus(r.Context(), id, status)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body: " + err.Error())
	}
	return nil
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
