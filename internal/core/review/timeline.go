package review

// TimelineRequest 一条时间轴渲染请求，列表组件按序渲染
// 同一次派生中所有请求共享相同的时间范围与分段间隔
type TimelineRequest struct {
	Stream        Stream    `json:"stream"`
	Range         TimeRange `json:"range"`
	ChunkInterval Time90k   `json:"chunk_interval_90k"`
	Trim          bool      `json:"trim"`
}

// Chunks 把区间按 interval 切分为对齐区间起点的连续分段
// 除最后一段外每段时长恰为 interval；余数非零时最后一段为余数，否则为 interval
// 分段数 = ceil(D / interval)
func (r TimeRange) Chunks(interval Time90k) []TimeRange {
	d := r.Duration()
	if d <= 0 || interval <= 0 {
		return nil
	}
	n := (d + interval - 1) / interval
	out := make([]TimeRange, 0, n)
	for start := r.Start; start < r.End; start += interval {
		end := min(start+interval, r.End)
		out = append(out, TimeRange{Start: start, End: end})
	}
	return out
}

// Timelines 纯派生：选中流 × 时间范围 × 分段间隔 → 时间轴请求序列
// 顺序与选中顺序一致，同一选择集合下保持稳定，避免无关重渲染引起闪烁
// 时间范围未选择时不产生任何请求，这是"尚未选择时间窗口"的空闲态而非错误
func Timelines(streams []Stream, rng *TimeRange, interval Time90k, trim bool) []TimelineRequest {
	if rng == nil {
		return nil
	}
	out := make([]TimelineRequest, 0, len(streams))
	for _, s := range streams {
		out = append(out, TimelineRequest{
			Stream:        s,
			Range:         *rng,
			ChunkInterval: interval,
			Trim:          trim,
		})
	}
	return out
}
