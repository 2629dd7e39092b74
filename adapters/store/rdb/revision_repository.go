package rdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/slipway-dev/slipway/domain"
	"github.com/slipway-dev/slipway/domain/model"
	"gorm.io/gorm"
)

type RevisionRepository struct{ db *gorm.DB }

func NewRevisionRepository(db *gorm.DB) *RevisionRepository { return &RevisionRepository{db: db} }

func revisionToRecord(rev *model.Revision) *RevisionRecord {
	return &RevisionRecord{
		ID:         rev.ID,
		SourcePath: rev.SourcePath,
		Source:     rev.Source,
		Digest:     rev.Digest,
		Documents:  rev.Documents,
		Applied:    rev.Applied,
		CreatedAt:  rev.CreatedAt,
		UpdatedAt:  rev.UpdatedAt,
	}
}

func revisionToModel(rec *RevisionRecord) *model.Revision {
	return &model.Revision{
		ID:         rec.ID,
		SourcePath: rec.SourcePath,
		Source:     rec.Source,
		Digest:     rec.Digest,
		Documents:  rec.Documents,
		Applied:    rec.Applied,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func (r *RevisionRepository) Create(ctx context.Context, rev *model.Revision) error {
	rec := revisionToRecord(rev)
	if rec.ID == "" {
		rec.ID = "rev-" + uuid.NewString()
		rev.ID = rec.ID
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	// GORM fills timestamps on insert; reflect them back to the model.
	rev.CreatedAt = rec.CreatedAt
	rev.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *RevisionRepository) Get(ctx context.Context, id string) (*model.Revision, error) {
	var rec RevisionRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRevisionNotFound
		}
		return nil, err
	}
	return revisionToModel(&rec), nil
}

func (r *RevisionRepository) Latest(ctx context.Context) (*model.Revision, error) {
	var rec RevisionRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRevisionNotFound
		}
		return nil, err
	}
	return revisionToModel(&rec), nil
}

func (r *RevisionRepository) LatestApplied(ctx context.Context) (*model.Revision, error) {
	var rec RevisionRecord
	if err := r.db.WithContext(ctx).Where("applied = ?", true).Order("created_at DESC, id DESC").First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRevisionNotFound
		}
		return nil, err
	}
	return revisionToModel(&rec), nil
}

func (r *RevisionRepository) List(ctx context.Context) ([]*model.Revision, error) {
	var recs []RevisionRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Revision, 0, len(recs))
	for i := range recs {
		out = append(out, revisionToModel(&recs[i]))
	}
	return out, nil
}

func (r *RevisionRepository) MarkApplied(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&RevisionRecord{}).Where("id = ?", id).Update("applied", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrRevisionNotFound
	}
	return nil
}

func (r *RevisionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&RevisionRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrRevisionNotFound
	}
	return nil
}

var _ domain.RevisionRepository = (*RevisionRepository)(nil)
