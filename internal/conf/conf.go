package conf

import (
	"errors"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Bootstrap 应用启动配置
type Bootstrap struct {
	BuildVersion string `toml:"-"` // 构建时注入
	Debug        bool   `toml:"debug"`
	Server       Server `toml:"server"`
	Data         Data   `toml:"data"`
}

type Server struct {
	HTTP   HTTP         `toml:"http"`
	Review ServerReview `toml:"review"`
}

type HTTP struct {
	Port      int    `toml:"port"`
	JwtSecret string `toml:"jwt_secret"` // 为空时启动随机生成
	PProf     PProf  `toml:"pprof"`
}

type PProf struct {
	Enabled   bool     `toml:"enabled"`
	AccessIps []string `toml:"access_ips"`
}

// ServerReview 回看视图配置
type ServerReview struct {
	StorageDir          string `toml:"storage_dir"`           // 录像文件存储目录
	DefaultChunkSeconds int64  `toml:"default_chunk_seconds"` // 默认分段间隔（秒）
	SessionTTLSeconds   int64  `toml:"session_ttl_seconds"`   // 会话空闲回收（秒）
}

type Data struct {
	Database Database `toml:"database"`
}

type Database struct {
	Dsn             string   `toml:"dsn"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	SlowThreshold   Duration `toml:"slow_threshold"`
}

// Duration 支持 "30s" 文本格式的时长配置项
type Duration time.Duration

// Duration 转换为 time.Duration
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default 缺省配置，配置文件缺失或字段缺省时使用
func Default() *Bootstrap {
	return &Bootstrap{
		Server: Server{
			HTTP: HTTP{Port: 8080},
			Review: ServerReview{
				StorageDir:          "recordings",
				DefaultChunkSeconds: 3600,
				SessionTTLSeconds:   1800,
			},
		},
		Data: Data{
			Database: Database{
				Dsn:             "replay.db",
				MaxIdleConns:    10,
				MaxOpenConns:    50,
				ConnMaxLifetime: Duration(6 * time.Hour),
				SlowThreshold:   Duration(200 * time.Millisecond),
			},
		},
	}
}

// Load 读取 TOML 配置文件，文件不存在时返回缺省配置
func Load(path string) (*Bootstrap, error) {
	out := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(b, out); err != nil {
		return nil, err
	}
	return out, nil
}
