package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskgrid/internal/model"
	"taskgrid/internal/repository"
)

// TemplateService manages reusable task templates and turns them back into
// task input.
type TemplateService struct {
	templates *repository.TemplateRepository
}

func NewTemplateService(templates *repository.TemplateRepository) *TemplateService {
	return &TemplateService{templates: templates}
}

// Save upserts a template by (user, title), replacing the item set when the
// title already exists.
func (s *TemplateService) Save(ctx context.Context, userID uint, title string, items []ItemInput) (*model.TaskTemplate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("template title is required: %w", ErrInvalidInput)
	}
	var templateItems []model.TemplateItem
	for _, in := range items {
		content := strings.TrimSpace(in.Content)
		if content == "" || in.GridCount <= 0 {
			continue
		}
		templateItems = append(templateItems, model.TemplateItem{Content: content, GridCount: in.GridCount})
	}
	if len(templateItems) == 0 {
		return nil, fmt.Errorf("template needs at least one item: %w", ErrInvalidInput)
	}
	return s.templates.Upsert(ctx, userID, title, templateItems)
}

func (s *TemplateService) List(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	return s.templates.ListByUser(ctx, userID)
}

func (s *TemplateService) Delete(ctx context.Context, userID, templateID uint) error {
	if _, err := s.owned(ctx, userID, templateID); err != nil {
		return err
	}
	return s.templates.Delete(ctx, templateID)
}

// Materialize expands a template into task input ready for
// TaskService.CreateTask; recurrence and dates are left for the caller to
// fill in.
func (s *TemplateService) Materialize(ctx context.Context, userID, templateID uint) (TaskInput, error) {
	template, err := s.owned(ctx, userID, templateID)
	if err != nil {
		return TaskInput{}, err
	}
	input := TaskInput{Title: template.Title}
	for _, item := range template.Items {
		input.Items = append(input.Items, ItemInput{Content: item.Content, GridCount: item.GridCount})
	}
	return input, nil
}

func (s *TemplateService) owned(ctx context.Context, userID, templateID uint) (*model.TaskTemplate, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("template %d: %w", templateID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find template: %w", err)
	}
	if template.UserID != userID {
		return nil, fmt.Errorf("template %d: %w", templateID, ErrPermissionDenied)
	}
	return template, nil
}
