package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func projectToRecord(p *model.Project) *ProjectRecord {
	return &ProjectRecord{ID: p.ID, Name: p.Name, Title: p.Title, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

func projectToModel(r *ProjectRecord) *model.Project {
	return &model.Project{ID: r.ID, Name: r.Name, Title: r.Title, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	rec := projectToRecord(p)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	p.ID = rec.ID
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	var rec ProjectRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProjectNotFound
		}
		return nil, err
	}
	return projectToModel(&rec), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	var recs []ProjectRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Project, 0, len(recs))
	for i := range recs {
		out = append(out, projectToModel(&recs[i]))
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	rec := projectToRecord(p)
	return translate(r.db.WithContext(ctx).Model(&ProjectRecord{}).Where("id = ?", rec.ID).Updates(rec).Error)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ProjectRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrProjectNotFound
	}
	return nil
}

var _ domain.ProjectRepository = (*ProjectRepository)(nil)
