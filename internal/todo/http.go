package todo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniTodo/pkg/kit"
)

const (
	maxBodyBytes = 1 << 20
	readyTimeout = 1 * time.Second
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

type helloResp struct {
	Message string `json:"message"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "MiniTodo API server is running!")
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
			kit.WriteJSON(w, http.StatusOK, helloResp{Message: "Hello from MiniTodo API!"})
		})

		r.Get("/todos", s.list)
		r.Post("/todos", s.create)
		r.Get("/todos/{id}", s.get)
		r.Put("/todos/{id}", s.update)
		r.Delete("/todos/{id}", s.delete)
	})

	return r
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	todos, err := s.Store.List(r.Context())
	if err != nil {
		s.serverError(w, "list todos failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, todos)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTodo
	if err := decodeBody(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	t, err := s.Store.Create(r.Context(), req.Title)
	if err != nil {
		s.serverError(w, "create todo failed", err)
		return
	}

	s.log().Info("todo created", zap.Uint64("id", t.ID))
	kit.WriteJSON(w, http.StatusCreated, t)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		s.notFound(w, &NotFoundError{ID: raw})
		return
	}

	t, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, "get todo failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, t)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		s.notFound(w, &NotFoundError{ID: raw})
		return
	}

	var upd UpdateTodo
	if err := decodeBody(w, r, &upd); err != nil {
		writeDecodeError(w, err)
		return
	}

	t, err := s.Store.Update(r.Context(), id, upd)
	if err != nil {
		s.writeStoreError(w, "update todo failed", err)
		return
	}

	s.log().Info("todo updated", zap.Uint64("id", t.ID))
	kit.WriteJSON(w, http.StatusOK, t)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		s.notFound(w, &NotFoundError{ID: raw})
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, "delete todo failed", err)
		return
	}

	s.log().Info("todo deleted", zap.Uint64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, msg string, err error) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		s.notFound(w, nf)
		return
	}
	s.serverError(w, msg, err)
}

func (s *Server) notFound(w http.ResponseWriter, nf *NotFoundError) {
	s.log().Warn("todo not found", zap.String("id", nf.ID))
	kit.WriteError(w, http.StatusNotFound, nf.Error())
}

func (s *Server) serverError(w http.ResponseWriter, msg string, err error) {
	s.log().Error(msg, zap.Error(err))
	kit.WriteError(w, http.StatusInternalServerError, "server error")
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// parseID accepts only non-negative decimal ids. Anything else names a todo
// that cannot exist.
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return id, err == nil
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		kit.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	kit.WriteError(w, http.StatusBadRequest, "bad json")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
