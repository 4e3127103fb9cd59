package review

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gowvp/replay/pkg/aspect"
	"github.com/gowvp/replay/pkg/observe"
)

// Session 一次回看视图的选择状态根
// 其余派生（时间轴列表、播放源、适配矩形）均由当前值纯函数计算
// 所有变更都是互斥锁内的单个同步步骤，两次变更不会交错
type Session struct {
	ID              string
	TimeZone        string
	Location        *time.Location
	ControlsVisible bool

	mu            sync.Mutex
	streams       []Stream
	timeRange     *TimeRange
	chunkInterval Time90k
	trim          bool
	overlay       bool
	playback      *PlaybackRef
	detachFitter  func()
	lastActive    time.Time

	// revision 每次变更自增并通知，供长连接推送方感知状态变化
	revision *observe.Value[int64]
	// bounds 播放容器尺寸，由前端上报；layout 适配结果，推送给前端
	bounds *observe.Value[aspect.Rect]
	layout *observe.Value[aspect.Rect]
}

// NewSession 创建空白会话，随视图挂载产生，随视图卸载销毁
func NewSession(timeZone string, controlsVisible bool, chunkInterval Time90k) (*Session, error) {
	loc := time.Local
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return nil, err
		}
		loc = l
	}
	if chunkInterval <= 0 {
		chunkInterval = DefaultChunkInterval
	}
	return &Session{
		ID:              uuid.NewString(),
		TimeZone:        timeZone,
		Location:        loc,
		ControlsVisible: controlsVisible,
		chunkInterval:   chunkInterval,
		lastActive:      time.Now(),
		revision:        observe.NewValue[int64](0),
		bounds:          observe.NewValue(aspect.Rect{}),
		layout:          observe.NewValue(aspect.Rect{}),
	}, nil
}

// touch 记录活跃时间并广播变更，调用方需持有 s.mu
func (s *Session) touch() {
	s.lastActive = time.Now()
	rev := s.revision.Get() + 1
	s.revision.Set(rev)
}

// LastActive 最近一次操作时间，空闲回收依据
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// WatchRevision 订阅状态变更，返回取消函数
func (s *Session) WatchRevision(fn func(int64)) (cancel func()) {
	return s.revision.Subscribe(fn)
}

// Resize 前端上报播放容器最新尺寸
// 仅在播放中生效（适配器随播放面挂载）；零尺寸由适配器内部忽略
func (s *Session) Resize(bounds aspect.Rect) {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
	s.bounds.Set(bounds)
}

// Layout 最近一次适配结果，未适配过为零值
func (s *Session) Layout() aspect.Rect {
	return s.layout.Get()
}

// WatchLayout 订阅适配结果，返回当前值与取消函数
// 订阅方（如 SSE 推送）断开时必须调用取消函数释放订阅
func (s *Session) WatchLayout(fn func(aspect.Rect)) (last aspect.Rect, cancel func()) {
	return s.layout.Get(), s.layout.Subscribe(fn)
}

// boundsSource 把容器尺寸单元适配成 aspect.BoundsNotifier
type boundsSource struct {
	cell *observe.Value[aspect.Rect]
}

func (b boundsSource) Bounds() aspect.Rect { return b.cell.Get() }

func (b boundsSource) Subscribe(fn func(aspect.Rect)) func() { return b.cell.Subscribe(fn) }

// Close 销毁会话：结束播放并释放全部订阅
// 可重复调用，重复关闭是空操作
func (s *Session) Close() {
	s.Dismiss("session closed")
}
