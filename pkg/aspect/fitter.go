package aspect

import "sync"

// BoundsNotifier 容器尺寸变化通知源
// Subscribe 返回取消函数，取消后不再收到通知
type BoundsNotifier interface {
	// Bounds 当前容器矩形
	Bounds() Rect
	// Subscribe 订阅尺寸变化，返回的取消函数可重复调用，只生效一次
	Subscribe(fn func(Rect)) (cancel func())
}

// Fitter 跟随容器尺寸变化，把播放面持续适配到目标宽高比
// 生命周期与全屏播放面一致：Attach 时订阅，cancel 时释放
type Fitter struct {
	mu    sync.Mutex
	ratio Ratio
	last  Rect
	apply func(Rect)
}

// NewFitter apply 回调收到适配结果，以显式像素尺寸作用到播放面上
func NewFitter(ratio Ratio, apply func(Rect)) *Fitter {
	return &Fitter{ratio: ratio, apply: apply}
}

// Resize 根据最新容器尺寸重新计算
// 容器宽或高为 0 时跳过，保留上一次结果，避免输出零面积矩形
// 幂等：同样的输入重复调用输出相同，可在每次通知时无脑调用
func (f *Fitter) Resize(bounds Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if bounds.IsZero() {
		return
	}
	f.last = Fit(f.ratio, bounds)
	if f.apply != nil {
		f.apply(f.last)
	}
}

// Last 上一次适配结果，未适配过则为零值
func (f *Fitter) Last() Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// Attach 挂载到通知源：立即按当前尺寸适配一次，随后跟随每次变化
// 返回的取消函数必须在播放面不可见时调用，且所有退出路径都要调用
// 取消函数幂等，多次调用只释放一次
func (f *Fitter) Attach(n BoundsNotifier) (cancel func()) {
	f.Resize(n.Bounds())
	unsubscribe := n.Subscribe(f.Resize)

	var once sync.Once
	return func() {
		once.Do(unsubscribe)
	}
}
