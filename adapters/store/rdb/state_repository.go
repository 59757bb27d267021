package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mwops/mwops/domain"
	"github.com/mwops/mwops/domain/model"
)

type PlatformStateRepository struct{ db *gorm.DB }

func NewPlatformStateRepository(db *gorm.DB) *PlatformStateRepository {
	return &PlatformStateRepository{db: db}
}

func stateToRecord(s *model.PlatformState) (*PlatformStateRecord, error) {
	extra := ""
	if len(s.ExtraData) > 0 {
		b, err := json.Marshal(s.ExtraData)
		if err != nil {
			return nil, fmt.Errorf("encode extra data: %w", err)
		}
		extra = string(b)
	}
	return &PlatformStateRecord{
		PlatformID: s.PlatformID, Status: string(s.Status), Active: s.Active,
		Message: s.Message, LastHeartbeat: s.LastHeartbeat, ExtraData: extra,
		DBUser: s.DBUser, DBName: s.DBName, DBPass: s.DBPass, DBCACert: s.DBCACert,
	}, nil
}

func stateToModel(r *PlatformStateRecord) (*model.PlatformState, error) {
	var extra map[string]any
	if r.ExtraData != "" {
		if err := json.Unmarshal([]byte(r.ExtraData), &extra); err != nil {
			return nil, fmt.Errorf("decode extra data: %w", err)
		}
	}
	return &model.PlatformState{
		PlatformID: r.PlatformID, Status: model.PlatformStatus(r.Status), Active: r.Active,
		Message: r.Message, LastHeartbeat: r.LastHeartbeat, ExtraData: extra,
		DBUser: r.DBUser, DBName: r.DBName, DBPass: r.DBPass, DBCACert: r.DBCACert,
	}, nil
}

func (r *PlatformStateRepository) Load(ctx context.Context, platformID int64) (*model.PlatformState, error) {
	var rec PlatformStateRecord
	if err := r.db.WithContext(ctx).First(&rec, "platform_id = ?", platformID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return stateToModel(&rec)
}

func (r *PlatformStateRepository) Upsert(ctx context.Context, s *model.PlatformState) error {
	rec, err := stateToRecord(s)
	if err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform_id"}},
		UpdateAll: true,
	}).Create(rec).Error)
}

func (r *PlatformStateRepository) Delete(ctx context.Context, platformID int64) error {
	return translate(r.db.WithContext(ctx).Delete(&PlatformStateRecord{}, "platform_id = ?", platformID).Error)
}

// AcquirePollLease claims the lease with an atomic conditional update and
// falls back to an insert when no row exists yet. A unique-key failure on
// the insert means another holder won the race.
func (r *PlatformStateRepository) AcquirePollLease(ctx context.Context, platformID int64, holder string, ttl time.Duration) (bool, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&PollLeaseRecord{}).
		Where("platform_id = ? AND (expires_at <= ? OR holder = ?)", platformID, now, holder).
		Updates(map[string]any{"holder": holder, "expires_at": now.Add(ttl)})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	rec := PollLeaseRecord{PlatformID: platformID, Holder: holder, ExpiresAt: now.Add(ttl)}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		terr := translate(err)
		var ce *model.ConflictError
		var ve *model.ValidationError
		if errors.As(terr, &ce) || errors.As(terr, &ve) {
			return false, nil
		}
		return false, terr
	}
	return true, nil
}

func (r *PlatformStateRepository) ReleasePollLease(ctx context.Context, platformID int64, holder string) error {
	return translate(r.db.WithContext(ctx).
		Delete(&PollLeaseRecord{}, "platform_id = ? AND holder = ?", platformID, holder).Error)
}

var _ domain.PlatformStateRepository = (*PlatformStateRepository)(nil)
