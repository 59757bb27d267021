package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

type PlatformRepository struct{ db *gorm.DB }

func NewPlatformRepository(db *gorm.DB) *PlatformRepository { return &PlatformRepository{db: db} }

func platformToRecord(p *model.PostgresPlatform) *PostgresPlatformRecord {
	return &PostgresPlatformRecord{
		ID: p.ID, UUID: p.UUID, Name: p.Name, Title: p.Title,
		ProjectID: p.ProjectID, ClusterID: p.ClusterID,
		Instances: p.Instances, StorageSize: p.StorageSize, Image: p.Image,
		CPURequest: p.CPURequest, CPULimit: p.CPULimit,
		MemoryRequest: p.MemoryRequest, MemoryLimit: p.MemoryLimit,
		BackupEnabled: p.BackupEnabled, BackupDestination: p.BackupDestination,
		BackupRetention: p.BackupRetention, S3StorageID: p.S3StorageID,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func platformToModel(r *PostgresPlatformRecord) *model.PostgresPlatform {
	return &model.PostgresPlatform{
		ID: r.ID, UUID: r.UUID, Name: r.Name, Title: r.Title,
		ProjectID: r.ProjectID, ClusterID: r.ClusterID,
		Instances: r.Instances, StorageSize: r.StorageSize, Image: r.Image,
		CPURequest: r.CPURequest, CPULimit: r.CPULimit,
		MemoryRequest: r.MemoryRequest, MemoryLimit: r.MemoryLimit,
		BackupEnabled: r.BackupEnabled, BackupDestination: r.BackupDestination,
		BackupRetention: r.BackupRetention, S3StorageID: r.S3StorageID,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (r *PlatformRepository) Create(ctx context.Context, p *model.PostgresPlatform) error {
	rec := platformToRecord(p)
	if rec.UUID == "" {
		rec.UUID = uuid.NewString()
		p.UUID = rec.UUID
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	p.ID = rec.ID
	return nil
}

func (r *PlatformRepository) Get(ctx context.Context, id int64) (*model.PostgresPlatform, error) {
	var rec PostgresPlatformRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlatformNotFound
		}
		return nil, err
	}
	return platformToModel(&rec), nil
}

func (r *PlatformRepository) List(ctx context.Context) ([]*model.PostgresPlatform, error) {
	var recs []PostgresPlatformRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.PostgresPlatform, 0, len(recs))
	for i := range recs {
		out = append(out, platformToModel(&recs[i]))
	}
	return out, nil
}

func (r *PlatformRepository) Update(ctx context.Context, p *model.PostgresPlatform) error {
	rec := platformToRecord(p)
	return translate(r.db.WithContext(ctx).Model(&PostgresPlatformRecord{}).Where("id = ?", rec.ID).
		Select("title", "cluster_id", "instances",
			"cpu_request", "cpu_limit", "memory_request", "memory_limit",
			"backup_enabled", "backup_destination", "backup_retention", "s3_storage_id",
			"updated_at").
		Updates(rec).Error)
}

func (r *PlatformRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&PostgresPlatformRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrPlatformNotFound
	}
	return nil
}

var _ domain.PlatformRepository = (*PlatformRepository)(nil)
