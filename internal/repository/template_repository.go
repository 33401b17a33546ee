package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskgrid/internal/model"
)

// TemplateRepository manages reusable task templates.
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Upsert saves a template under (user, title), replacing the item set of an
// existing template with the same title.
func (r *TemplateRepository) Upsert(ctx context.Context, userID uint, title string, items []model.TemplateItem) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND title = ?", userID, title).First(&template).Error
		switch {
		case err == nil:
			if err := tx.Where("template_id = ?", template.ID).Delete(&model.TemplateItem{}).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			template = model.TaskTemplate{UserID: userID, Title: title}
			if err := tx.Create(&template).Error; err != nil {
				return err
			}
		default:
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].TemplateID = template.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("upsert template: %w", err)
	}
	template.Items = items
	return &template, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, templateID uint) (*model.TaskTemplate, error) {
	var template model.TaskTemplate
	if err := r.db.WithContext(ctx).Preload("Items").First(&template, templateID).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) ListByUser(ctx context.Context, userID uint) ([]model.TaskTemplate, error) {
	var templates []model.TaskTemplate
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("title ASC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

func (r *TemplateRepository) Delete(ctx context.Context, templateID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", templateID).Delete(&model.TemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TaskTemplate{}, templateID).Error
	})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
