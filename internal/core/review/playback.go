package review

import (
	"log/slog"

	"github.com/gowvp/replay/pkg/aspect"
	"github.com/ixugo/goddd/pkg/reason"
)

// 播放状态机只有两态：空闲 / 播放中
// 单会话单播放，不排队不缓冲
const (
	StateIdle    = "idle"
	StatePlaying = "playing"
)

// SourceProvider 播放地址构建接口，解耦回看领域与点播服务
// 由适配器实现，见 internal/core/review/adapter
type SourceProvider interface {
	// BuildSource 构建播放源：叠加开关与可选的裁剪子区间编入地址
	BuildSource(ref PlaybackRef, overlay bool, sub *TimeRange) (PlaybackSource, error)
	// Playlist 生成按分段间隔切分的 HLS 播放列表
	Playlist(ref PlaybackRef, overlay bool, sub *TimeRange, chunk Time90k) (string, error)
}

// State 当前播放状态
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == nil {
		return StateIdle
	}
	return StatePlaying
}

// Playback 当前播放引用
func (s *Session) Playback() (PlaybackRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == nil {
		return PlaybackRef{}, false
	}
	return *s.playback, true
}

// Play 外部触发（列表行点击）进入播放
// 无条件替换：已在播放时旧引用被直接覆盖，始终只有一个活动引用
// 进入播放即把适配器挂载到容器尺寸通知源上，播放面随容器变化持续适配
func (s *Session) Play(ref PlaybackRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detachFitter != nil {
		s.detachFitter()
		s.detachFitter = nil
	}

	s.playback = &ref
	fitter := aspect.NewFitter(ref.Entry.Ratio(), s.layout.Set)
	s.detachFitter = fitter.Attach(boundsSource{cell: s.bounds})
	s.touch()

	slog.Debug("playback started",
		"session", s.ID,
		"stream", ref.Stream.Key(),
		"recording", ref.Recording.ID,
	)
}

// Dismiss 结束播放，清除活动引用并释放尺寸订阅
// reason 仅用于日志，任何来源（关闭按钮、点击遮罩、视图卸载）处理一致
// 空闲时调用是空操作，返回 false
func (s *Session) Dismiss(reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playback == nil {
		return false
	}

	if s.detachFitter != nil {
		s.detachFitter()
		s.detachFitter = nil
	}
	ref := s.playback
	s.playback = nil
	s.touch()

	slog.Debug("playback dismissed",
		"session", s.ID,
		"stream", ref.Stream.Key(),
		"reason", reason,
	)
	return true
}

// Source 由当前播放引用与裁剪/叠加开关派生播放源
// 裁剪开启时子区间取当前时间范围与录像自身区间的交集
// 裁剪开启而时间范围未设置属于调用方违约，这里显式拒绝而非悄悄回落为全段播放
func (s *Session) Source(p SourceProvider) (*PlaybackSource, error) {
	s.mu.Lock()
	ref := s.playback
	trim := s.trim
	overlay := s.overlay
	rng := s.timeRange
	s.mu.Unlock()

	if ref == nil {
		return nil, reason.ErrNotFound.Withf("session[%s] no active playback", s.ID)
	}

	var sub *TimeRange
	if trim {
		if rng == nil {
			return nil, reason.ErrBadRequest.Withf("session[%s] trim requires a time range", s.ID)
		}
		// 列表只展示与时间范围有重叠的录像，交集为空说明引用已失效
		v, ok := rng.Intersect(ref.Recording.Range())
		if !ok {
			return nil, reason.ErrBadRequest.Withf("session[%s] recording[%d] outside range", s.ID, ref.Recording.ID)
		}
		sub = &v
	}

	out, err := p.BuildSource(*ref, overlay, sub)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
