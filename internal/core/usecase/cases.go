package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
	"github.com/lexhub/legal-case-assistant/internal/core/ports"
)

type CaseUseCase struct {
	cases    ports.CaseRepository
	docs     ports.DocumentRepository
	timeline ports.TimelineRepository
}

func NewCaseUseCase(
	cases ports.CaseRepository,
	docs ports.DocumentRepository,
	timeline ports.TimelineRepository,
) *CaseUseCase {
	return &CaseUseCase{cases: cases, docs: docs, timeline: timeline}
}

func (uc *CaseUseCase) CreateCase(ctx context.Context, title, number, description, thesis string) (*domain.Case, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "create case", errors.New("empty title"))
	}

	now := time.Now().UTC()
	kase := &domain.Case{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Number:      strings.TrimSpace(number),
		Description: description,
		Thesis:      thesis,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.cases.Create(ctx, kase); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	return kase, nil
}

func (uc *CaseUseCase) GetCase(ctx context.Context, id string) (*domain.Case, []domain.Document, error) {
	kase, err := uc.cases.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch case: %w", err)
	}
	docs, err := uc.docs.ListByCase(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list case documents: %w", err)
	}
	return kase, docs, nil
}

func (uc *CaseUseCase) Timeline(ctx context.Context, caseID string) ([]domain.TimelineEvent, error) {
	if _, err := uc.cases.GetByID(ctx, caseID); err != nil {
		return nil, fmt.Errorf("fetch case: %w", err)
	}
	events, err := uc.timeline.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	return events, nil
}
