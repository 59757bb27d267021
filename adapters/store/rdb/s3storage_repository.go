package rdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

type S3StorageRepository struct{ db *gorm.DB }

func NewS3StorageRepository(db *gorm.DB) *S3StorageRepository { return &S3StorageRepository{db: db} }

func s3ToRecord(s *model.S3Storage) *S3StorageRecord {
	return &S3StorageRecord{ID: s.ID, Name: s.Name, Region: s.Region, EndpointURL: s.EndpointURL,
		AccessKey: s.AccessKey, SecretKey: s.SecretKey, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func s3ToModel(r *S3StorageRecord) *model.S3Storage {
	return &model.S3Storage{ID: r.ID, Name: r.Name, Region: r.Region, EndpointURL: r.EndpointURL,
		AccessKey: r.AccessKey, SecretKey: r.SecretKey, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

func (r *S3StorageRepository) Create(ctx context.Context, s *model.S3Storage) error {
	rec := s3ToRecord(s)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return translate(err)
	}
	s.ID = rec.ID
	return nil
}

func (r *S3StorageRepository) Get(ctx context.Context, id int64) (*model.S3Storage, error) {
	var rec S3StorageRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrS3StorageNotFound
		}
		return nil, err
	}
	return s3ToModel(&rec), nil
}

func (r *S3StorageRepository) List(ctx context.Context) ([]*model.S3Storage, error) {
	var recs []S3StorageRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.S3Storage, 0, len(recs))
	for i := range recs {
		out = append(out, s3ToModel(&recs[i]))
	}
	return out, nil
}

func (r *S3StorageRepository) Update(ctx context.Context, s *model.S3Storage) error {
	rec := s3ToRecord(s)
	return translate(r.db.WithContext(ctx).Model(&S3StorageRecord{}).Where("id = ?", rec.ID).
		Select("name", "region", "endpoint_url", "access_key", "secret_key", "updated_at").Updates(rec).Error)
}

func (r *S3StorageRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&S3StorageRecord{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrS3StorageNotFound
	}
	return nil
}

var _ domain.S3StorageRepository = (*S3StorageRepository)(nil)
