package review

// 选择状态的读写对。写入不会失败：取值范围由上游选择器组件约束，此处不做校验
// 每次写入后同步广播变更，时间轴列表等派生值由读取方重新计算

// Streams 当前选中的流，按加入顺序返回副本
func (s *Session) Streams() []Stream {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Stream, len(s.streams))
	copy(out, s.streams)
	return out
}

// AddStream 加入一路流
// 集合语义：同一 (摄像机, 流类型) 已存在时拒绝重复加入，返回 false
func (s *Session) AddStream(stream Stream) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.streams {
		if v.Equal(stream) {
			return false
		}
	}
	s.streams = append(s.streams, stream)
	s.touch()
	return true
}

// RemoveStream 移除一路流，不存在时为空操作
func (s *Session) RemoveStream(stream Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.streams {
		if v.Equal(stream) {
			s.streams = append(s.streams[:i], s.streams[i+1:]...)
			s.touch()
			return
		}
	}
}

// SetStreams 整体替换选中集合，保序去重
func (s *Session) SetStreams(streams []Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Stream, 0, len(streams))
	for _, v := range streams {
		dup := false
		for _, kept := range out {
			if kept.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	s.streams = out
	s.touch()
}

// TimeRange 当前时间范围，未选择时为 nil
func (s *Session) TimeRange() *TimeRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeRange == nil {
		return nil
	}
	r := *s.timeRange
	return &r
}

// SetTimeRange 设置时间范围，传 nil 表示清除
func (s *Session) SetTimeRange(r *TimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == nil {
		s.timeRange = nil
	} else {
		v := *r
		s.timeRange = &v
	}
	s.touch()
}

// ChunkInterval 当前分段间隔
func (s *Session) ChunkInterval() Time90k {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunkInterval
}

// SetChunkInterval 设置分段间隔，非正值回落到默认值
func (s *Session) SetChunkInterval(interval Time90k) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if interval <= 0 {
		interval = DefaultChunkInterval
	}
	s.chunkInterval = interval
	s.touch()
}

// Trim 裁剪开关
func (s *Session) Trim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trim
}

// SetTrim 设置裁剪开关
// 约定：上游界面保证仅在已设置时间范围时开启裁剪
func (s *Session) SetTrim(trim bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trim = trim
	s.touch()
}

// Overlay 时间戳叠加开关
func (s *Session) Overlay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

// SetOverlay 设置时间戳叠加开关
func (s *Session) SetOverlay(overlay bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = overlay
	s.touch()
}

// Timelines 按当前选择派生时间轴请求列表
func (s *Session) Timelines() []TimelineRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Timelines(s.streams, s.timeRange, s.chunkInterval, s.trim)
}
