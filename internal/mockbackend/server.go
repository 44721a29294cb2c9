// Package mockbackend serves the chat and listing endpoints the client
// consumes, backed by a SQLite listing table and a keyword-driven agent.
package mockbackend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jol/internal/db"
	"jol/internal/logger"
	"jol/internal/models"
)

type Server struct {
	conn    *sql.DB
	now     func() time.Time
	planner Planner
	log     *log.Logger
}

type ServerOption func(*Server)

// WithPlanner replaces the keyword planner. The keyword rules still answer
// any turn the planner fails on.
func WithPlanner(p Planner) ServerOption {
	return func(s *Server) { s.planner = p }
}

func NewServer(conn *sql.DB, opts ...ServerOption) *Server {
	s := &Server{conn: conn, now: time.Now, planner: RulePlanner{}, log: logger.With("mock")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Post("/chat", s.chat)
	r.Get("/listings", s.listListings)
	r.Get("/listings/{id}", s.getListing)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"session", r.Header.Get("X-Session-ID"),
			"duration", time.Since(start).String())
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "JOL AI Agent"})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid body: %v", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusUnprocessableEntity, "message must not be empty")
		return
	}

	resp, err := s.respond(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Agent error: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) respond(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	decision, err := s.planner.Plan(ctx, req)
	if err != nil {
		s.log.Warn("Planner failed, using keyword rules", "error", err)
		decision = Decision{Calls: Plan(req.Message)}
	}
	calls := decision.Calls
	resp := &models.ChatResponse{
		Reasoning:        fmt.Sprintf("matched %d tool(s) with %d prior turns", len(calls), len(req.History)),
		ActionsTaken:     []models.ActionRecord{},
		SuggestedActions: []models.SuggestedAction{},
		UpdatedListings:  []int64{},
	}

	var messages []string
	for _, call := range calls {
		out, err := ExecuteTool(s.conn, call, s.now())
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(out.Result)
		if err != nil {
			return nil, err
		}
		s.log.Debug("Tool executed", "summary", GenerateToolSummary(call, out))
		resp.ActionsTaken = append(resp.ActionsTaken, models.ActionRecord{Tool: call.Name, Result: raw})
		resp.UpdatedListings = append(resp.UpdatedListings, out.Updated...)
		if msg, _ := out.Result["message"].(string); msg != "" {
			messages = append(messages, msg)
		}
		if call.Name == ToolQueryListings {
			resp.SuggestedActions = append(resp.SuggestedActions, models.SuggestedAction{
				Label:  "가장 오래된 매물 끌어올리기",
				Action: ToolBoostListing,
			})
		}
	}

	switch {
	case len(messages) > 0:
		resp.Response = strings.Join(messages, "\n\n")
	case decision.Reply != "":
		resp.Response = decision.Reply
	default:
		resp.Response = "무엇을 도와드릴까요? **매물 조회**, **끌어올리기**, **가격 변경**을 요청할 수 있어요."
	}
	return resp, nil
}

func (s *Server) listListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status == "" {
		status = "active"
	}
	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = "created_at"
	}
	sortOrder := q.Get("sort_order")
	if sortOrder == "" {
		sortOrder = "DESC"
	}

	items, err := db.GetListings(s.conn, status, sortBy, sortOrder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "listing id must be an integer")
		return
	}
	l, err := db.GetListing(s.conn, id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Listing %d not found", id))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Database error: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
