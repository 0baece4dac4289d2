// Package httpadapter exposes the case and document pipeline over a small
// JSON API. Uploads return immediately with pending documents; callers poll
// document status while the worker advances the pipeline.
package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
	"github.com/lexhub/legal-case-assistant/internal/observability/metrics"
)

const maxUploadBytes = 64 << 20

type Router struct {
	cases      ports.CaseManager
	uploader   ports.DocumentUploader
	docs       ports.DocumentReader
	summarizer ports.CaseSummarizer
	metrics    *metrics.HTTPServerMetrics

	rateLimitRPS   float64
	rateLimitBurst int
}

type Options struct {
	Metrics        *metrics.HTTPServerMetrics
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	cases ports.CaseManager,
	uploader ports.DocumentUploader,
	docs ports.DocumentReader,
	summarizer ports.CaseSummarizer,
	options Options,
) *Router {
	return &Router{
		cases:          cases,
		uploader:       uploader,
		docs:           docs,
		summarizer:     summarizer,
		metrics:        options.Metrics,
		rateLimitRPS:   options.RateLimitRPS,
		rateLimitBurst: options.RateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /v1/cases", rt.createCase)
	mux.HandleFunc("GET /v1/cases/{id}", rt.getCase)
	mux.HandleFunc("POST /v1/cases/{id}/documents", rt.uploadDocuments)
	mux.HandleFunc("POST /v1/cases/{id}/summary", rt.generateSummary)
	mux.HandleFunc("GET /v1/cases/{id}/timeline", rt.getTimeline)
	mux.HandleFunc("GET /v1/documents/{id}", rt.getDocument)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

type createCaseRequest struct {
	Title       string `json:"title"`
	Number      string `json:"number"`
	Description string `json:"description"`
	Thesis      string `json:"thesis"`
}

func (rt *Router) createCase(w http.ResponseWriter, r *http.Request) {
	var req createCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	kase, err := rt.cases.CreateCase(r.Context(), req.Title, req.Number, req.Description, req.Thesis)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCaseResponse(kase, nil))
}

func (rt *Router) getCase(w http.ResponseWriter, r *http.Request) {
	kase, docs, err := rt.cases.GetCase(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCaseResponse(kase, docs))
}

func (rt *Router) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files in form field 'files'")
		return
	}

	uploaded := make([]documentResponse, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("open upload %s", header.Filename))
			return
		}

		doc, err := rt.uploader.Upload(r.Context(), caseID, header.Filename, header.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		uploaded = append(uploaded, toDocumentResponse(doc))
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"documents": uploaded})
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := rt.docs.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

func (rt *Router) generateSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := rt.summarizer.Generate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (rt *Router) getTimeline(w http.ResponseWriter, r *http.Request) {
	events, err := rt.cases.Timeline(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]timelineEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, timelineEventResponse{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
			Type:        string(event.Type),
			CreatedAt:   event.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

type caseResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Number      string              `json:"number,omitempty"`
	Description string              `json:"description,omitempty"`
	Thesis      string              `json:"thesis,omitempty"`
	Summary     *domain.CaseSummary `json:"summary,omitempty"`
	Documents   []documentResponse  `json:"documents,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type documentResponse struct {
	ID         string                 `json:"id"`
	CaseID     string                 `json:"case_id"`
	Name       string                 `json:"name"`
	MimeType   string                 `json:"mime_type"`
	Status     string                 `json:"status"`
	Type       string                 `json:"type,omitempty"`
	Confidence int                    `json:"confidence,omitempty"`
	Summary    domain.DocumentSummary `json:"summary,omitempty"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type timelineEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCaseResponse(kase *domain.Case, docs []domain.Document) caseResponse {
	resp := caseResponse{
		ID:          kase.ID,
		Title:       kase.Title,
		Number:      kase.Number,
		Description: kase.Description,
		Thesis:      kase.Thesis,
		Summary:     kase.Summary,
		CreatedAt:   kase.CreatedAt,
		UpdatedAt:   kase.UpdatedAt,
	}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(&doc))
	}
	return resp
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	resp := documentResponse{
		ID:        doc.ID,
		CaseID:    doc.CaseID,
		Name:      doc.Name,
		MimeType:  doc.MimeType,
		Status:    string(doc.Status),
		Summary:   doc.IndividualSummary,
		Error:     doc.Error,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Classification != nil {
		resp.Type = string(doc.Classification.Type)
		resp.Confidence = doc.Classification.Confidence
	}
	return resp
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := mapErrorToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
