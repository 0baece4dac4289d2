package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

type caseManagerFake struct {
	kase   *domain.Case
	docs   []domain.Document
	events []domain.TimelineEvent
	err    error
}

func (f *caseManagerFake) CreateCase(_ context.Context, title, number, description, thesis string) (*domain.Case, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Case{ID: "case-1", Title: title, Number: number, Description: description, Thesis: thesis}, nil
}

func (f *caseManagerFake) GetCase(context.Context, string) (*domain.Case, []domain.Document, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.kase, f.docs, nil
}

func (f *caseManagerFake) Timeline(context.Context, string) ([]domain.TimelineEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type uploaderFake struct {
	uploaded []string
	err      error
}

func (f *uploaderFake) Upload(_ context.Context, caseID, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	_, _ = io.Copy(io.Discard, body)
	f.uploaded = append(f.uploaded, filename)
	return &domain.Document{
		ID:       "doc-" + filename,
		CaseID:   caseID,
		Name:     filename,
		MimeType: mimeType,
		Status:   domain.StatusPending,
	}, nil
}

type docReaderFake struct {
	doc *domain.Document
	err error
}

func (f *docReaderFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type caseSummarizerFake struct {
	summary *domain.CaseSummary
	err     error
}

func (f *caseSummarizerFake) Generate(context.Context, string) (*domain.CaseSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func newTestHandler(cases *caseManagerFake, uploader *uploaderFake, docs *docReaderFake, summarizer *caseSummarizerFake) http.Handler {
	rt := NewRouter(cases, uploader, docs, summarizer, Options{})
	return rt.Handler()
}

func TestCreateCase(t *testing.T) {
	handler := newTestHandler(&caseManagerFake{}, &uploaderFake{}, &docReaderFake{}, &caseSummarizerFake{})

	body := strings.NewReader(`{"title":"Cobrança","number":"0001234-56.2024.8.26.0100"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/cases", body)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", res.Code, res.Body.String())
	}
	var resp caseResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Cobrança" || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if res.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestCreateCaseInvalidInput(t *testing.T) {
	cases := &caseManagerFake{err: domain.WrapError(domain.ErrInvalidInput, "create case", io.ErrUnexpectedEOF)}
	handler := newTestHandler(cases, &uploaderFake{}, &docReaderFake{}, &caseSummarizerFake{})

	req := httptest.NewRequest(http.MethodPost, "/v1/cases", strings.NewReader(`{"title":""}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadDocumentsMultipart(t *testing.T) {
	uploader := &uploaderFake{}
	handler := newTestHandler(&caseManagerFake{}, uploader, &docReaderFake{}, &caseSummarizerFake{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, name := range []string{"peticao.pdf", "contrato.txt"} {
		part, err := form.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write([]byte("conteudo"))
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/cases/case-1/documents", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}
	if len(uploader.uploaded) != 2 {
		t.Fatalf("expected 2 uploads, got %v", uploader.uploaded)
	}

	var resp struct {
		Documents []documentResponse `json:"documents"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, doc := range resp.Documents {
		if doc.Status != string(domain.StatusPending) {
			t.Fatalf("uploads must start pending, got %s", doc.Status)
		}
	}
}

func TestUploadWithoutFiles(t *testing.T) {
	handler := newTestHandler(&caseManagerFake{}, &uploaderFake{}, &docReaderFake{}, &caseSummarizerFake{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("note", "no files here")
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/cases/case-1/documents", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestGetDocumentStatuses(t *testing.T) {
	doc := &domain.Document{
		ID:     "doc-1",
		CaseID: "case-1",
		Name:   "sentenca.pdf",
		Status: domain.StatusSummarized,
		Classification: &domain.Classification{
			Type:       domain.TypeSentenca,
			Confidence: 88,
		},
		IndividualSummary: domain.DocumentSummary{"dispositivo": "procedente"},
	}
	handler := newTestHandler(&caseManagerFake{}, &uploaderFake{}, &docReaderFake{doc: doc}, &caseSummarizerFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/doc-1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp documentResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Type != string(domain.TypeSentenca) || resp.Confidence != 88 {
		t.Fatalf("unexpected classification in response: %+v", resp)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	docs := &docReaderFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get document", io.ErrUnexpectedEOF)}
	handler := newTestHandler(&caseManagerFake{}, &uploaderFake{}, docs, &caseSummarizerFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGenerateSummaryModelExhaustion(t *testing.T) {
	summarizer := &caseSummarizerFake{err: domain.WrapError(domain.ErrTemporary, "generate case report", io.ErrUnexpectedEOF)}
	handler := newTestHandler(&caseManagerFake{}, &uploaderFake{}, &docReaderFake{}, summarizer)

	req := httptest.NewRequest(http.MethodPost, "/v1/cases/case-1/summary", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestGetTimeline(t *testing.T) {
	cases := &caseManagerFake{events: []domain.TimelineEvent{{
		ID:        "evt-1",
		CaseID:    "case-1",
		Title:     "sentenca.pdf",
		Type:      domain.EventDocumentProcessed,
		CreatedAt: time.Now().UTC(),
	}}}
	handler := newTestHandler(cases, &uploaderFake{}, &docReaderFake{}, &caseSummarizerFake{})

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/case-1/timeline", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Events []timelineEventResponse `json:"events"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Type != string(domain.EventDocumentProcessed) {
		t.Fatalf("unexpected events: %+v", resp.Events)
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	rt := NewRouter(&caseManagerFake{kase: &domain.Case{ID: "case-1"}}, &uploaderFake{}, &docReaderFake{}, &caseSummarizerFake{},
		Options{RateLimitRPS: 1, RateLimitBurst: 1})
	handler := rt.Handler()

	req1 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, req1)
	if res1.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res2.Code)
	}
	if res2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header for 429 response")
	}
}
