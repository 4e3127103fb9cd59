package review

import (
	"github.com/ixugo/goddd/pkg/web"
)

// FindCamerasInput 摄像机列表查询参数
type FindCamerasInput struct {
	web.PagerFilter
	Name string `form:"name"` // 按名称模糊筛选
}

// FindRecordingsInput 录像列表查询参数
// 查询 (摄像机, 流类型) 一路流上与 [Start90k, End90k) 有重叠的录像
type FindRecordingsInput struct {
	web.PagerFilter
	CameraID string `form:"camera_id"`
	Kind     string `form:"kind"`
	Start90k int64  `form:"start_90k"`
	End90k   int64  `form:"end_90k"`
}

// AddCameraInput 摄像机入库参数
type AddCameraInput struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// AddSampleEntryInput sample entry 入库参数
// 宽高比分量必须为正整数，适配计算不再校验
type AddSampleEntryInput struct {
	Codec   string `json:"codec"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AspectW int    `json:"aspect_w"`
	AspectH int    `json:"aspect_h"`
}

// AddRecordingInput 录像入库参数，由采集侧写入
type AddRecordingInput struct {
	CameraID      string `json:"camera_id"`
	Kind          string `json:"kind"`
	Start90k      int64  `json:"start_90k"`
	End90k        int64  `json:"end_90k"`
	SampleEntryID int64  `json:"sample_entry_id"`
	Path          string `json:"path"`
	Size          int64  `json:"size"`
}

// CreateSessionInput 创建回看会话参数
type CreateSessionInput struct {
	TimeZone        string `json:"time_zone"`        // IANA 时区名，空值使用服务器本地时区
	ControlsVisible bool   `json:"controls_visible"` // 是否显示选择器控件
	ChunkSeconds    int64  `json:"chunk_seconds"`    // 初始分段间隔（秒），0 使用默认值
}
