package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gowvp/replay/internal/conf"
	"github.com/gowvp/replay/internal/core/review"
	"github.com/gowvp/replay/pkg/aspect"
	"github.com/ixugo/goddd/pkg/reason"
	"github.com/ixugo/goddd/pkg/web"
)

// ReviewAPI 为 http 提供业务方法
type ReviewAPI struct {
	manager    *review.Manager
	reviewCore review.Core
	conf       *conf.Bootstrap
}

func RegisterReview(g gin.IRouter, api ReviewAPI, auth gin.HandlerFunc, handler ...gin.HandlerFunc) {
	{
		group := g.Group("/reviews", handler...)
		group.POST("", web.WrapH(api.createSession))
		group.GET("/:id", web.WrapH(api.getSession))
		group.DELETE("/:id", web.WrapH(api.closeSession))
		group.PUT("/:id/streams", web.WrapH(api.setStreams))
		group.PUT("/:id/range", web.WrapH(api.setRange))
		group.PUT("/:id/options", web.WrapH(api.setOptions))
		group.GET("/:id/timelines", web.WrapH(api.getTimelines))
		group.GET("/:id/recordings", web.WrapH(api.findSessionRecordings))
		group.POST("/:id/playback", web.WrapH(api.startPlayback))
		group.DELETE("/:id/playback", web.WrapH(api.dismissPlayback))
		group.GET("/:id/playback/source", web.WrapH(api.getPlaybackSource))
		group.POST("/:id/playback/window", web.WrapH(api.resizeWindow))
		// 适配结果 SSE 推送，连接断开即释放订阅
		group.GET("/:id/playback/layout", api.streamLayout)
	}

	{
		group := g.Group("/cameras", handler...)
		group.GET("", web.WrapH(api.findCameras))
		group.POST("", auth, web.WrapH(api.addCamera))
	}

	// 采集侧元数据写入接口
	g.POST("/sample-entries", auth, web.WrapH(api.addSampleEntry))
	g.POST("/recordings", auth, web.WrapH(api.addRecording))
	g.DELETE("/recordings/:id", auth, web.WrapH(api.delRecording))

	// HLS 播放列表（按当前播放引用与裁剪区间动态生成）
	g.GET("/playback/:camera_id/:kind/:recording_id/index.m3u8", gzip.Gzip(gzip.DefaultCompression), api.playlist)

	// 静态文件服务，用于访问录像 MP4 文件
	// Gin Static 支持 HTTP Range 请求，实现边下载边播放（秒播）
	if api.conf != nil && api.conf.Server.Review.StorageDir != "" {
		slog.Info("注册录像静态文件服务", "path", "/static/recordings", "dir", api.conf.Server.Review.StorageDir)
		g.Static("/static/recordings", api.conf.Server.Review.StorageDir)
	}
}

// sessionOutput 会话快照
type sessionOutput struct {
	ID               string              `json:"id"`
	TimeZone         string              `json:"time_zone"`
	ControlsVisible  bool                `json:"controls_visible"`
	State            string              `json:"state"`
	Streams          []review.Stream     `json:"streams"`
	Range            *review.TimeRange   `json:"range,omitempty"`
	ChunkInterval90k review.Time90k      `json:"chunk_interval_90k"`
	Trim             bool                `json:"trim"`
	Overlay          bool                `json:"overlay"`
	Playback         *review.PlaybackRef `json:"playback,omitempty"`
}

func toSessionOutput(s *review.Session) sessionOutput {
	out := sessionOutput{
		ID:               s.ID,
		TimeZone:         s.TimeZone,
		ControlsVisible:  s.ControlsVisible,
		State:            s.State(),
		Streams:          s.Streams(),
		Range:            s.TimeRange(),
		ChunkInterval90k: s.ChunkInterval(),
		Trim:             s.Trim(),
		Overlay:          s.Overlay(),
	}
	if ref, ok := s.Playback(); ok {
		out.Playback = &ref
	}
	return out
}

// createSession 创建回看会话，视图挂载时调用
func (a ReviewAPI) createSession(_ *gin.Context, in *review.CreateSessionInput) (sessionOutput, error) {
	s, err := a.manager.CreateSession(in)
	if err != nil {
		return sessionOutput{}, err
	}
	return toSessionOutput(s), nil
}

func (a ReviewAPI) getSession(c *gin.Context, _ *struct{}) (sessionOutput, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return sessionOutput{}, err
	}
	return toSessionOutput(s), nil
}

// closeSession 销毁会话，视图卸载时调用，重复关闭是空操作
func (a ReviewAPI) closeSession(c *gin.Context, _ *struct{}) (any, error) {
	a.manager.CloseSession(c.Param("id"))
	return gin.H{"msg": "ok"}, nil
}

type streamRefInput struct {
	CameraID string `json:"camera_id" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
}

type setStreamsInput struct {
	Streams []streamRefInput `json:"streams"`
}

// setStreams 整体替换选中的流集合
// 每个引用按 (摄像机, 流类型) 解析为流身份，集合内部保序去重
func (a ReviewAPI) setStreams(c *gin.Context, in *setStreamsInput) (sessionOutput, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return sessionOutput{}, err
	}

	streams := make([]review.Stream, 0, len(in.Streams))
	for _, v := range in.Streams {
		stream, err := a.reviewCore.GetStream(c.Request.Context(), v.CameraID, v.Kind)
		if err != nil {
			return sessionOutput{}, err
		}
		streams = append(streams, stream)
	}
	s.SetStreams(streams)
	return toSessionOutput(s), nil
}

type setRangeInput struct {
	Range *review.TimeRange `json:"range"` // null 表示清除时间范围
}

// setRange 设置时间范围
func (a ReviewAPI) setRange(c *gin.Context, in *setRangeInput) (sessionOutput, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return sessionOutput{}, err
	}
	if in.Range != nil && in.Range.End <= in.Range.Start {
		return sessionOutput{}, reason.ErrBadRequest.Withf("range must satisfy end > start")
	}
	s.SetTimeRange(in.Range)
	return toSessionOutput(s), nil
}

type setOptionsInput struct {
	ChunkSeconds *int64 `json:"chunk_seconds"`
	Trim         *bool  `json:"trim"`
	Overlay      *bool  `json:"overlay"`
}

// setOptions 设置显示选项：分段间隔、裁剪、时间戳叠加
// 未设置时间范围时开启裁剪属于调用方违约，在这里拦截
func (a ReviewAPI) setOptions(c *gin.Context, in *setOptionsInput) (sessionOutput, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return sessionOutput{}, err
	}
	if in.Trim != nil && *in.Trim && s.TimeRange() == nil {
		return sessionOutput{}, reason.ErrBadRequest.Withf("trim requires a time range")
	}
	if in.ChunkSeconds != nil {
		s.SetChunkInterval(review.Time90k(*in.ChunkSeconds) * review.TicksPerSecond)
	}
	if in.Trim != nil {
		s.SetTrim(*in.Trim)
	}
	if in.Overlay != nil {
		s.SetOverlay(*in.Overlay)
	}
	return toSessionOutput(s), nil
}

// getTimelines 派生时间轴请求列表，每路选中流一条
func (a ReviewAPI) getTimelines(c *gin.Context, _ *struct{}) (any, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}
	items := s.Timelines()
	return gin.H{"items": items, "total": len(items)}, nil
}

type sessionRecordingsInput struct {
	web.PagerFilter
	CameraID string `form:"camera_id"`
	Kind     string `form:"kind"`
}

// recordingRow 列表行：录像元数据 + 按会话时区格式化的起止时间
type recordingRow struct {
	*review.Recording
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// findSessionRecordings 按会话当前 (时间范围, 分段间隔) 查询一路流的录像列表
// 时间范围未选择时返回空列表，对应"尚未选择时间窗口"的空闲态
func (a ReviewAPI) findSessionRecordings(c *gin.Context, in *sessionRecordingsInput) (any, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}

	rng := s.TimeRange()
	if rng == nil {
		return gin.H{"items": []recordingRow{}, "total": 0}, nil
	}

	items, total, err := a.reviewCore.FindRecordings(c.Request.Context(), &review.FindRecordingsInput{
		PagerFilter: in.PagerFilter,
		CameraID:    in.CameraID,
		Kind:        in.Kind,
		Start90k:    int64(rng.Start),
		End90k:      int64(rng.End),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]recordingRow, 0, len(items))
	for _, v := range items {
		rows = append(rows, recordingRow{
			Recording: v,
			StartTime: formatTime90k(v.Start90k, s.Location),
			EndTime:   formatTime90k(v.End90k, s.Location),
		})
	}
	return gin.H{"items": rows, "total": total}, nil
}

type startPlaybackInput struct {
	CameraID    string `json:"camera_id" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	RecordingID int64  `json:"recording_id" binding:"required"`
}

// startPlayback 列表行点击进入播放
// 已在播放时直接替换旧引用，单会话同时只有一个播放
func (a ReviewAPI) startPlayback(c *gin.Context, in *startPlaybackInput) (any, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}

	ref, err := a.reviewCore.GetPlaybackRef(c.Request.Context(), in.CameraID, in.Kind, in.RecordingID)
	if err != nil {
		return nil, err
	}
	s.Play(*ref)

	source, err := s.Source(a.reviewCore.SourceProvider())
	if err != nil {
		return nil, err
	}
	return gin.H{"state": s.State(), "source": source}, nil
}

// dismissPlayback 结束播放
// reason 可为 close/outside/unmount 等，仅用于日志，处理完全一致
func (a ReviewAPI) dismissPlayback(c *gin.Context, _ *struct{}) (any, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}
	s.Dismiss(c.Query("reason"))
	return gin.H{"state": s.State()}, nil
}

// getPlaybackSource 按当前播放引用与开关派生播放源
func (a ReviewAPI) getPlaybackSource(c *gin.Context, _ *struct{}) (*review.PlaybackSource, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}
	return s.Source(a.reviewCore.SourceProvider())
}

type resizeWindowInput struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// resizeWindow 前端上报播放容器尺寸
// 宽或高为 0 的瞬态尺寸会被适配器忽略，保留上一次结果
func (a ReviewAPI) resizeWindow(c *gin.Context, in *resizeWindowInput) (any, error) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		return nil, err
	}
	s.Resize(aspect.Rect{Width: in.Width, Height: in.Height})
	return gin.H{"layout": s.Layout()}, nil
}

// streamLayout 通过 SSE 持续推送适配结果
// 订阅随连接建立，连接断开（含异常断开）时释放，不会遗留观察者
func (a ReviewAPI) streamLayout(c *gin.Context) {
	s, err := a.manager.GetSession(c.Param("id"))
	if err != nil {
		web.Fail(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "不支持 SSE"})
		return
	}

	sendEvent := func(event string, v any) {
		b, _ := json.Marshal(v)
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, b)
		flusher.Flush()
	}

	ch := make(chan aspect.Rect, 8)
	last, cancel := s.WatchLayout(func(r aspect.Rect) {
		select {
		case ch <- r:
		default:
		}
	})
	defer cancel()

	if !last.IsZero() {
		sendEvent("layout", last)
	}

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case r := <-ch:
			sendEvent("layout", r)
		}
	}
}

// findCameras 摄像机列表，供流选择器使用
func (a ReviewAPI) findCameras(c *gin.Context, in *review.FindCamerasInput) (any, error) {
	items, total, err := a.reviewCore.FindCameras(c.Request.Context(), in)
	return gin.H{"items": items, "total": total}, err
}

func (a ReviewAPI) addCamera(c *gin.Context, in *review.AddCameraInput) (*review.Camera, error) {
	return a.reviewCore.AddCamera(c.Request.Context(), in)
}

func (a ReviewAPI) addSampleEntry(c *gin.Context, in *review.AddSampleEntryInput) (*review.SampleEntry, error) {
	return a.reviewCore.AddSampleEntry(c.Request.Context(), in)
}

func (a ReviewAPI) addRecording(c *gin.Context, in *review.AddRecordingInput) (*review.Recording, error) {
	return a.reviewCore.AddRecording(c.Request.Context(), in)
}

func (a ReviewAPI) delRecording(c *gin.Context, _ *struct{}) (*review.Recording, error) {
	recordingID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return a.reviewCore.DelRecording(c.Request.Context(), recordingID)
}

// playlist 生成 HLS m3u8 播放列表
// 路径: /playback/:camera_id/:kind/:recording_id/index.m3u8?ts=1&start_90k=xxx&end_90k=xxx
func (a ReviewAPI) playlist(c *gin.Context) {
	recordingID, err := strconv.ParseInt(c.Param("recording_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "msg": "invalid recording id"})
		return
	}

	ref, err := a.reviewCore.GetPlaybackRef(c.Request.Context(), c.Param("camera_id"), c.Param("kind"), recordingID)
	if err != nil {
		web.Fail(c, err)
		return
	}

	overlay := c.Query("ts") == "1"
	var sub *review.TimeRange
	start, _ := strconv.ParseInt(c.Query("start_90k"), 10, 64)
	end, _ := strconv.ParseInt(c.Query("end_90k"), 10, 64)
	if end > start {
		sub = &review.TimeRange{Start: review.Time90k(start), End: review.Time90k(end)}
	}

	content, err := a.reviewCore.SourceProvider().Playlist(*ref, overlay, sub, a.reviewCore.DefaultChunk())
	if err != nil {
		web.Fail(c, err)
		return
	}

	c.Data(http.StatusOK, "application/vnd.apple.mpegurl", []byte(content))
}
