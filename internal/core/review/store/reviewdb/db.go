package reviewdb

import (
	"log/slog"

	"github.com/gowvp/replay/internal/core/review"
	"gorm.io/gorm"
)

var _ review.Storer = (*DB)(nil)

// DB 基于 gorm 的持久层实现
type DB struct {
	db *gorm.DB
}

// NewDB create DB
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// AutoMigrate 按需自动建表
func (d *DB) AutoMigrate(ok bool) *DB {
	if !ok {
		return d
	}
	if err := d.db.AutoMigrate(
		new(review.Camera),
		new(review.SampleEntry),
		new(review.Recording),
	); err != nil {
		slog.Error("AutoMigrate", "err", err)
	}
	return d
}

// Camera implements review.Storer.
func (d *DB) Camera() review.CameraStorer {
	return Camera{db: d.db}
}

// SampleEntry implements review.Storer.
func (d *DB) SampleEntry() review.SampleEntryStorer {
	return SampleEntry{db: d.db}
}

// Recording implements review.Storer.
func (d *DB) Recording() review.RecordingStorer {
	return Recording{db: d.db}
}
