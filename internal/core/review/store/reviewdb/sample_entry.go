package reviewdb

import (
	"context"

	"github.com/gowvp/replay/internal/core/review"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

var _ review.SampleEntryStorer = SampleEntry{}

// SampleEntry 编码描述存储
type SampleEntry struct {
	db *gorm.DB
}

// Get implements review.SampleEntryStorer.
func (s SampleEntry) Get(ctx context.Context, out *review.SampleEntry, opts ...orm.QueryOption) error {
	db := s.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	return db.First(out).Error
}

// Add implements review.SampleEntryStorer.
func (s SampleEntry) Add(ctx context.Context, in *review.SampleEntry) error {
	return s.db.WithContext(ctx).Create(in).Error
}
