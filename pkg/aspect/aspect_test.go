package aspect

import (
	"math"
	"testing"
)

func TestFitWideContainer(t *testing.T) {
	// 容器 (1000,400) 适配 16:9，候选宽度 400*16/9 ≈ 711.1 ≤ 1000
	got := Fit(Ratio{W: 16, H: 9}, Rect{Width: 1000, Height: 400})
	if math.Abs(got.Width-711.1111111111111) > 1e-6 {
		t.Fatalf("width = %v", got.Width)
	}
	if got.Height != 400 {
		t.Fatalf("height = %v", got.Height)
	}
}

func TestFitNarrowContainer(t *testing.T) {
	// 容器 (500,400) 适配 16:9，候选宽度 ≈ 888.9 > 500，按宽度压缩
	got := Fit(Ratio{W: 16, H: 9}, Rect{Width: 500, Height: 400})
	if got.Width != 500 {
		t.Fatalf("width = %v", got.Width)
	}
	if math.Abs(got.Height-281.25) > 1e-6 {
		t.Fatalf("height = %v", got.Height)
	}
}

func TestFitProperties(t *testing.T) {
	// 结果必须在容器内、保持宽高比、至少一边贴边
	ratios := []Ratio{{16, 9}, {4, 3}, {1, 1}, {9, 16}, {21, 9}}
	bounds := []Rect{
		{1920, 1080}, {1080, 1920}, {100, 100}, {1, 1000}, {1000, 1},
		{333, 777}, {2560, 1440},
	}
	for _, ratio := range ratios {
		for _, b := range bounds {
			got := Fit(ratio, b)
			if got.Width > b.Width+1e-9 || got.Height > b.Height+1e-9 {
				t.Fatalf("Fit(%v, %v) = %v exceeds bounds", ratio, b, got)
			}
			want := float64(ratio.W) / float64(ratio.H)
			if r := got.Width / got.Height; math.Abs(r-want) > 1e-9*want {
				t.Fatalf("Fit(%v, %v) ratio = %v, want %v", ratio, b, r, want)
			}
			if math.Abs(got.Width-b.Width) > 1e-9 && math.Abs(got.Height-b.Height) > 1e-9 {
				t.Fatalf("Fit(%v, %v) = %v touches no edge", ratio, b, got)
			}
		}
	}
}

func TestFitterSkipsZeroBounds(t *testing.T) {
	f := NewFitter(Ratio{W: 16, H: 9}, nil)
	f.Resize(Rect{Width: 1000, Height: 400})
	want := f.Last()

	// 首帧前的瞬态零尺寸不得产生零面积矩形，保留上一次结果
	f.Resize(Rect{Width: 0, Height: 400})
	f.Resize(Rect{Width: 1000, Height: 0})
	if got := f.Last(); got != want {
		t.Fatalf("Last() = %v, want %v", got, want)
	}
}

func TestFitterIdempotent(t *testing.T) {
	var applied []Rect
	f := NewFitter(Ratio{W: 4, H: 3}, func(r Rect) {
		applied = append(applied, r)
	})
	f.Resize(Rect{Width: 800, Height: 600})
	f.Resize(Rect{Width: 800, Height: 600})

	if len(applied) != 2 {
		t.Fatalf("apply count = %d", len(applied))
	}
	if applied[0] != applied[1] {
		t.Fatalf("not idempotent: %v != %v", applied[0], applied[1])
	}
}

type fakeNotifier struct {
	bounds Rect
	fns    []func(Rect)
	cancel int
}

func (f *fakeNotifier) Bounds() Rect { return f.bounds }

func (f *fakeNotifier) Subscribe(fn func(Rect)) func() {
	f.fns = append(f.fns, fn)
	return func() { f.cancel++ }
}

func (f *fakeNotifier) fire(r Rect) {
	f.bounds = r
	for _, fn := range f.fns {
		fn(r)
	}
}

func TestFitterAttach(t *testing.T) {
	n := &fakeNotifier{bounds: Rect{Width: 1000, Height: 400}}
	f := NewFitter(Ratio{W: 16, H: 9}, nil)
	cancel := f.Attach(n)

	// 挂载时按当前尺寸适配一次
	if got := f.Last(); got.Height != 400 {
		t.Fatalf("initial fit = %v", got)
	}

	// 跟随后续尺寸变化
	n.fire(Rect{Width: 500, Height: 400})
	if got := f.Last(); got.Width != 500 {
		t.Fatalf("after resize = %v", got)
	}

	// 取消函数幂等，只释放一次
	cancel()
	cancel()
	if n.cancel != 1 {
		t.Fatalf("cancel count = %d", n.cancel)
	}
}
