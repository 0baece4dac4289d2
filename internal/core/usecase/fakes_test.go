package usecase

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type docRepoFake struct {
	doc            *domain.Document
	list           []domain.Document
	created        *domain.Document
	getErr         error
	listErr        error
	createErr      error
	statusErr      error
	saveTextErr    error
	saveClsErr     error
	saveSumErr     error
	statusCalls    []statusCall
	textPath       string
	classification domain.Classification
	clsSaved       bool
	summary        domain.DocumentSummary
	sumSaved       bool
}

func (f *docRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = doc
	return nil
}

func (f *docRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *docRepoFake) ListByCase(context.Context, string) ([]domain.Document, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *docRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	return f.statusErr
}

func (f *docRepoFake) SaveExtractedText(_ context.Context, _ string, textPath string) error {
	if f.saveTextErr != nil {
		return f.saveTextErr
	}
	f.textPath = textPath
	return nil
}

func (f *docRepoFake) SaveClassification(_ context.Context, _ string, cls domain.Classification) error {
	if f.saveClsErr != nil {
		return f.saveClsErr
	}
	f.classification = cls
	f.clsSaved = true
	return nil
}

func (f *docRepoFake) SaveSummary(_ context.Context, _ string, summary domain.DocumentSummary) error {
	if f.saveSumErr != nil {
		return f.saveSumErr
	}
	f.summary = summary
	f.sumSaved = true
	return nil
}

type caseRepoFake struct {
	kase        *domain.Case
	getErr      error
	saveErr     error
	savedSum    *domain.CaseSummary
	savedThesis string
}

func (f *caseRepoFake) Create(context.Context, *domain.Case) error { return nil }

func (f *caseRepoFake) GetByID(context.Context, string) (*domain.Case, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyCase := *f.kase
	return &copyCase, nil
}

func (f *caseRepoFake) SaveSummary(_ context.Context, _ string, summary domain.CaseSummary, suggestedThesis string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedSum = &summary
	f.savedThesis = suggestedThesis
	return nil
}

type objectStorageFake struct {
	objects map[string][]byte
	saveErr error
	openErr error
}

func (f *objectStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = raw
	return nil
}

func (f *objectStorageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	raw, ok := f.objects[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishDocumentUploaded(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return nil
}

type timelineFake struct {
	events []domain.TimelineEvent
	err    error
}

func (f *timelineFake) Append(_ context.Context, event *domain.TimelineEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *timelineFake) ListByCase(context.Context, string) ([]domain.TimelineEvent, error) {
	return f.events, nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type classifierFake struct {
	cls domain.Classification
	err error
}

func (f *classifierFake) Classify(context.Context, string) (domain.Classification, error) {
	if f.err != nil {
		return domain.Classification{}, f.err
	}
	return f.cls, nil
}

type summarizerFake struct {
	summary domain.DocumentSummary
	err     error
}

func (f *summarizerFake) Summarize(context.Context, domain.DocumentType, string) (domain.DocumentSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

type analystFake struct {
	summary  *domain.CaseSummary
	err      error
	contexts []domain.DocumentContext
}

func (f *analystFake) GenerateReport(_ context.Context, _ *domain.Case, contexts []domain.DocumentContext) (*domain.CaseSummary, error) {
	f.contexts = contexts
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}
