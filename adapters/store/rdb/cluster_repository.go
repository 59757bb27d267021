package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

type ClusterRepository struct{ db *gorm.DB }

func NewClusterRepository(db *gorm.DB) *ClusterRepository { return &ClusterRepository{db: db} }

func clusterToRecord(c *model.Cluster) *ClusterRecord {
	return &ClusterRecord{ID: c.ID, Name: c.Name, Type: string(c.Type), Kubeconfig: c.Kubeconfig, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func clusterToModel(r *ClusterRecord) *model.Cluster {
	return &model.Cluster{ID: r.ID, Name: r.Name, Type: model.ClusterType(r.Type), Kubeconfig: r.Kubeconfig, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r *ClusterRepository) Create(ctx context.Context, c *model.Cluster) error {
	rec := clusterToRecord(c)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	c.ID = rec.ID
	return nil
}

func (r *ClusterRepository) Get(ctx context.Context, id int64) (*model.Cluster, error) {
	var rec ClusterRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrClusterNotFound
		}
		return nil, err
	}
	return clusterToModel(&rec), nil
}

func (r *ClusterRepository) List(ctx context.Context) ([]*model.Cluster, error) {
	var recs []ClusterRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(recs))
	for i := range recs {
		out = append(out, clusterToModel(&recs[i]))
	}
	return out, nil
}

func (r *ClusterRepository) Update(ctx context.Context, c *model.Cluster) error {
	rec := clusterToRecord(c)
	// Select lists mutable columns explicitly so zero values (an emptied
	// kubeconfig) are written too.
	return translate(r.db.WithContext(ctx).Model(&ClusterRecord{}).Where("id = ?", rec.ID).
		Select("name", "type", "kubeconfig", "updated_at").Updates(rec).Error)
}

func (r *ClusterRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ClusterRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrClusterNotFound
	}
	return nil
}

var _ domain.ClusterRepository = (*ClusterRepository)(nil)
