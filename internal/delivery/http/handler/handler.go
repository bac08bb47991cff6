package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/user/newsingest/internal/delivery/http/request"
	"github.com/user/newsingest/internal/delivery/http/response"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/internal/usecase"
)

// ingestTimeout bounds one background ingestion run.
const ingestTimeout = 2 * time.Hour

type Handler struct {
	ingester usecase.Ingester
	reporter usecase.Reporter
	news     repository.NewsStore // nil when the postgres backend is disabled
}

func NewHandler(ingester usecase.Ingester, reporter usecase.Reporter, news repository.NewsStore) *Handler {
	return &Handler{
		ingester: ingester,
		reporter: reporter,
		news:     news,
	}
}

// HandleIngest accepts a date range and starts an ingestion run in the
// background. A crawl over several days can take minutes, so the run
// outlives the request; progress and the final counts go to the logs
// and metrics.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var req request.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := usecase.ParseDate(req.StartDate); err != nil {
		h.writeJSONError(w, "start_date must be YYYYMMDD", http.StatusBadRequest)
		return
	}
	if _, err := usecase.ParseDate(req.EndDate); err != nil {
		h.writeJSONError(w, "end_date must be YYYYMMDD", http.StatusBadRequest)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
		defer cancel()
		if _, err := h.ingester.Run(ctx, req.StartDate, req.EndDate); err != nil {
			slog.Error("Ingestion run failed", "start_date", req.StartDate, "end_date", req.EndDate, "error", err)
		}
	}()

	h.writeJSON(w, http.StatusAccepted, response.IngestResponse{
		Status:    "accepted",
		Message:   "Ingestion run started",
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
}

// HandleGetNews returns one stored press release row by news id.
func (h *Handler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		h.writeJSONError(w, "Relational store is not enabled", http.StatusNotImplemented)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeJSONError(w, "id query parameter is required", http.StatusBadRequest)
		return
	}

	news, err := h.news.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "News not found for the given id", http.StatusNotFound)
			return
		}
		slog.Error("Failed to load news", "id", id, "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.NewsResponse{
		ID:           news.ID,
		URL:          news.URL,
		Title:        news.Title,
		PubDate:      news.PubDate,
		PubTime:      news.PubTime,
		Organization: news.Organization,
		Keywords:     news.Keywords,
		Summary:      news.Summary,
		CrawledAt:    news.CrawledAt,
	})
}

// HandleReport builds an LLM-written report over stored chunks selected
// by pub-date range, organization membership and keyword.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if h.reporter == nil {
		h.writeJSONError(w, "Chunk store is not enabled", http.StatusNotImplemented)
		return
	}

	q := r.URL.Query()
	filter := repository.ChunkFilter{
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
		Keyword:  q.Get("keyword"),
	}
	if orgs := q.Get("organizations"); orgs != "" {
		for _, org := range strings.Split(orgs, ",") {
			if org = strings.TrimSpace(org); org != "" {
				filter.Organizations = append(filter.Organizations, org)
			}
		}
	}

	report, err := h.reporter.BuildReport(r.Context(), filter, q.Get("question"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeJSONError(w, "No stored chunks match the filter", http.StatusNotFound)
			return
		}
		slog.Error("Failed to build report", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.ReportResponse{Report: report})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
