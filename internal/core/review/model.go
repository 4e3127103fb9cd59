package review

import (
	"github.com/gowvp/replay/pkg/aspect"
	"github.com/ixugo/goddd/pkg/orm"
)

// TicksPerSecond 时间刻度单位，1 秒 = 90000 tick
// 与录像封装内的时间基一致，避免毫秒取整带来的边界误差
const TicksPerSecond = 90000

// DefaultChunkInterval 默认分段间隔：1 小时
const DefaultChunkInterval Time90k = 3600 * TicksPerSecond

// Time90k 90kHz 刻度时间值
type Time90k int64

// TimeRange 左闭右开时间区间 [Start, End)，非空时 End > Start
type TimeRange struct {
	Start Time90k `json:"start_90k"`
	End   Time90k `json:"end_90k"`
}

// Duration 区间时长
func (r TimeRange) Duration() Time90k { return r.End - r.Start }

// Intersect 计算与 o 的交集，无重叠时 ok 为 false
func (r TimeRange) Intersect(o TimeRange) (TimeRange, bool) {
	out := TimeRange{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
	if out.End <= out.Start {
		return TimeRange{}, false
	}
	return out, true
}

// Camera 摄像机，ID 为外部分配的稳定标识
type Camera struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	Name      string   `gorm:"notNull;default:''" json:"name"`
	CreatedAt orm.Time `json:"created_at"`
	UpdatedAt orm.Time `json:"updated_at"`
}

// TableName gorm 表名
func (Camera) TableName() string { return "cameras" }

// 流类型：主码流/子码流
const (
	KindMain = "main"
	KindSub  = "sub"
)

// Stream 摄像机的一路码流
// 身份由 (摄像机 ID, 流类型) 二元组决定，两次查询得到的同一路流必须相等
type Stream struct {
	Camera Camera `json:"camera"`
	Kind   string `json:"kind"`
}

// Key 流的唯一键，用于去重与日志
func (s Stream) Key() string { return s.Camera.ID + "/" + s.Kind }

// Equal 按 (摄像机 ID, 流类型) 判等，与对象身份无关
func (s Stream) Equal(o Stream) bool {
	return s.Camera.ID == o.Camera.ID && s.Kind == o.Kind
}

// SampleEntry 编码与几何描述
// 宽高比分量恒为正整数，由入库侧保证，消费方不再校验
type SampleEntry struct {
	ID        int64    `gorm:"primaryKey" json:"id"`
	Codec     string   `gorm:"notNull;default:''" json:"codec"` // 如 avc1.640028
	Width     int      `gorm:"notNull;default:0" json:"width"`
	Height    int      `gorm:"notNull;default:0" json:"height"`
	AspectW   int      `gorm:"notNull;default:0" json:"aspect_w"`
	AspectH   int      `gorm:"notNull;default:0" json:"aspect_h"`
	CreatedAt orm.Time `json:"created_at"`
}

// TableName gorm 表名
func (SampleEntry) TableName() string { return "sample_entries" }

// Ratio 转换为适配计算用的宽高比
func (e SampleEntry) Ratio() aspect.Ratio {
	return aspect.Ratio{W: e.AspectW, H: e.AspectH}
}

// Recording 一段录像文件的元数据，归属于某路流
type Recording struct {
	ID            int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CameraID      string   `gorm:"index:idx_recordings_stream;notNull" json:"camera_id"`
	Kind          string   `gorm:"index:idx_recordings_stream;notNull;default:''" json:"kind"`
	Start90k      int64    `gorm:"index;notNull;default:0" json:"start_90k"`
	End90k        int64    `gorm:"notNull;default:0" json:"end_90k"`
	SampleEntryID int64    `gorm:"notNull;default:0" json:"sample_entry_id"`
	Path          string   `gorm:"notNull;default:''" json:"path"` // 相对存储目录的文件路径
	Size          int64    `gorm:"notNull;default:0" json:"size"`  // 文件大小（字节）
	CreatedAt     orm.Time `json:"created_at"`
	UpdatedAt     orm.Time `json:"updated_at"`
}

// TableName gorm 表名
func (Recording) TableName() string { return "recordings" }

// Range 录像自身的时间区间
func (r Recording) Range() TimeRange {
	return TimeRange{Start: Time90k(r.Start90k), End: Time90k(r.End90k)}
}

// PlaybackRef 当前播放引用：流 + 录像 + sample entry
type PlaybackRef struct {
	Stream    Stream      `json:"stream"`
	Recording Recording   `json:"recording"`
	Entry     SampleEntry `json:"entry"`
}

// PlaybackSource 播放源描述，派生值不落库
type PlaybackSource struct {
	URL      string       `json:"url"`
	Playlist string       `json:"playlist,omitempty"` // HLS 播放列表地址，可选
	Ratio    aspect.Ratio `json:"ratio"`
	Overlay  bool         `json:"overlay"`
	Sub      *TimeRange   `json:"sub,omitempty"` // 裁剪后的子区间，未裁剪时为空
}
