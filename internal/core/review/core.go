package review

import (
	"context"
	"strings"

	"github.com/gowvp/replay/internal/conf"
	"github.com/ixugo/goddd/pkg/orm"
	"gorm.io/gorm"
)

// Storer data persistence
type Storer interface {
	Camera() CameraStorer
	SampleEntry() SampleEntryStorer
	Recording() RecordingStorer
}

// CameraStorer Instantiation interface
type CameraStorer interface {
	Find(context.Context, *[]*Camera, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Camera, ...orm.QueryOption) error
	Add(context.Context, *Camera) error
	Edit(context.Context, *Camera, func(*Camera), ...orm.QueryOption) error
	Del(context.Context, *Camera, ...orm.QueryOption) error
}

// SampleEntryStorer Instantiation interface
type SampleEntryStorer interface {
	Get(context.Context, *SampleEntry, ...orm.QueryOption) error
	Add(context.Context, *SampleEntry) error
}

// RecordingStorer Instantiation interface
type RecordingStorer interface {
	Find(context.Context, *[]*Recording, orm.Pager, ...orm.QueryOption) (int64, error)
	Get(context.Context, *Recording, ...orm.QueryOption) error
	Add(context.Context, *Recording) error
	Del(context.Context, *Recording, ...orm.QueryOption) error
	Count(context.Context, ...orm.QueryOption) (int64, error)

	Session(context.Context, ...func(*gorm.DB) error) error
}

// Core business domain
type Core struct {
	store          Storer
	conf           *conf.ServerReview
	sourceProvider SourceProvider
}

type Option func(*Core)

// WithConfig 注入回看配置
func WithConfig(conf *conf.ServerReview) Option {
	return func(c *Core) {
		c.conf = conf
	}
}

// WithSourceProvider 注入播放地址构建器
func WithSourceProvider(provider SourceProvider) Option {
	return func(c *Core) {
		c.sourceProvider = provider
	}
}

// NewCore create business domain
func NewCore(store Storer, opts ...Option) Core {
	c := Core{store: store}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SourceProvider 当前播放地址构建器
func (c Core) SourceProvider() SourceProvider {
	return c.sourceProvider
}

// DefaultChunk 配置的默认分段间隔，未配置时为 1 小时
func (c Core) DefaultChunk() Time90k {
	if c.conf == nil || c.conf.DefaultChunkSeconds <= 0 {
		return DefaultChunkInterval
	}
	return Time90k(c.conf.DefaultChunkSeconds) * TicksPerSecond
}

// GetFullPath 获取录像文件的完整路径
// relativePath 可能是相对于 StorageDir 的路径，也可能是完整路径
func (c Core) GetFullPath(relativePath string) string {
	if c.conf == nil || c.conf.StorageDir == "" {
		return relativePath
	}
	if len(relativePath) > 0 && (relativePath[0] == '/' || strings.HasPrefix(relativePath, c.conf.StorageDir)) {
		return relativePath
	}
	return c.conf.StorageDir + "/" + relativePath
}
