package reviewdb

import (
	"context"

	"github.com/gowvp/replay/internal/core/review"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

var _ review.CameraStorer = Camera{}

// Camera 摄像机存储
type Camera struct {
	db *gorm.DB
}

// Find implements review.CameraStorer.
func (c Camera) Find(ctx context.Context, items *[]*review.Camera, pager orm.Pager, opts ...orm.QueryOption) (int64, error) {
	db := c.db.WithContext(ctx).Model(&review.Camera{})
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

// Get implements review.CameraStorer.
func (c Camera) Get(ctx context.Context, out *review.Camera, opts ...orm.QueryOption) error {
	db := c.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	return db.First(out).Error
}

// Add implements review.CameraStorer.
func (c Camera) Add(ctx context.Context, in *review.Camera) error {
	return c.db.WithContext(ctx).Create(in).Error
}

// Edit implements review.CameraStorer.
func (c Camera) Edit(ctx context.Context, out *review.Camera, changeFn func(*review.Camera), opts ...orm.QueryOption) error {
	db := c.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	if err := db.First(out).Error; err != nil {
		return err
	}
	changeFn(out)
	return c.db.WithContext(ctx).Save(out).Error
}

// Del implements review.CameraStorer.
func (c Camera) Del(ctx context.Context, out *review.Camera, opts ...orm.QueryOption) error {
	db := c.db.WithContext(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	if err := db.First(out).Error; err != nil {
		return err
	}
	return c.db.WithContext(ctx).Delete(out).Error
}
