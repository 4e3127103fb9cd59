package reviewdb

import (
	"context"

	"github.com/gowvp/replay/internal/core/review"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

var _ review.RecordingStorer = Recording{}

// Recording 录像元数据存储
type Recording struct {
	db *gorm.DB
}

// Find implements review.RecordingStorer.
func (r Recording) Find(ctx context.Context, items *[]*review.Recording, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	db := r.db.WithContext(ctx).Model(&review.Recording{})
	for _, opt := range opts {
		db = opt(db)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	if pager != nil {
		db = db.Limit(pager.Limit()).Offset(pager.Offset())
	}
	return total, db.Find(items).Error
}

// Get implements review.RecordingStorer.
func (r Recording) Get(ctx context.Context, out *review.Recording, opts ...orm.QueryOption) error {
	db := r.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	return db.First(out).Error
}

// Add implements review.RecordingStorer.
func (r Recording) Add(ctx context.Context, in *review.Recording) error {
	return r.db.WithContext(ctx).Create(in).Error
}

// Del implements review.RecordingStorer.
func (r Recording) Del(ctx context.Context, out *review.Recording, opts ...orm.QueryOption) error {
	db := r.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	if err := db.First(out).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(out).Error
}

// Count implements review.RecordingStorer.
func (r Recording) Count(ctx context.Context, opts ...orm.QueryOption) (int64, error) {
	db := r.db.WithContext(ctx).Model(&review.Recording{})
	for _, opt := range opts {
		db = opt(db)
	}
	var total int64
	err := db.Count(&total).Error
	return total, err
}

// Session implements review.RecordingStorer.
func (r Recording) Session(ctx context.Context, changeFns ...func(*gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, fn := range changeFns {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
}
