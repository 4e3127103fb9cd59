package review

import (
	"testing"

	"github.com/gowvp/replay/pkg/aspect"
)

func testRef(camera string, recordingID int64, start, end int64) PlaybackRef {
	return PlaybackRef{
		Stream: Stream{Camera: Camera{ID: camera}, Kind: KindMain},
		Recording: Recording{
			ID:       recordingID,
			CameraID: camera,
			Kind:     KindMain,
			Start90k: start,
			End90k:   end,
			Path:     "record/cam/file.mp4",
		},
		Entry: SampleEntry{ID: 1, Codec: "avc1.640028", AspectW: 16, AspectH: 9},
	}
}

// fakeProvider 记录收到的参数，返回固定播放源
type fakeProvider struct {
	lastOverlay bool
	lastSub     *TimeRange
}

func (f *fakeProvider) BuildSource(ref PlaybackRef, overlay bool, sub *TimeRange) (PlaybackSource, error) {
	f.lastOverlay = overlay
	f.lastSub = sub
	return PlaybackSource{URL: "/static/recordings/" + ref.Recording.Path, Ratio: ref.Entry.Ratio(), Overlay: overlay, Sub: sub}, nil
}

func (f *fakeProvider) Playlist(ref PlaybackRef, overlay bool, sub *TimeRange, chunk Time90k) (string, error) {
	return "#EXTM3U", nil
}

func TestPlayReplacesActiveReference(t *testing.T) {
	s := newTestSession(t)

	s.Play(testRef("cam1", 1, 0, 100))
	if s.State() != StatePlaying {
		t.Fatalf("state = %s", s.State())
	}

	// 播放中再次选择：旧引用被直接替换，始终只有一个活动引用
	s.Play(testRef("cam2", 2, 0, 100))
	ref, ok := s.Playback()
	if !ok || ref.Recording.ID != 2 {
		t.Fatalf("ref = %+v ok = %v", ref, ok)
	}
}

func TestDismissClearsReference(t *testing.T) {
	s := newTestSession(t)
	s.Play(testRef("cam1", 1, 0, 100))

	// 任意来源的关闭动作处理一致
	if !s.Dismiss("outside click") {
		t.Fatal("dismiss returned false")
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %s", s.State())
	}
	if _, ok := s.Playback(); ok {
		t.Fatal("reference survived dismiss")
	}

	// 空闲时关闭是空操作
	if s.Dismiss("close") {
		t.Fatal("idle dismiss reported success")
	}
}

func TestSourceUntrimmed(t *testing.T) {
	s := newTestSession(t)
	s.Play(testRef("cam1", 1, 1000, 2000))

	var p fakeProvider
	src, err := s.Source(&p)
	if err != nil {
		t.Fatal(err)
	}
	// 未开启裁剪时整段播放
	if p.lastSub != nil {
		t.Fatalf("sub = %+v", p.lastSub)
	}
	if src.URL == "" {
		t.Fatal("empty url")
	}
}

func TestSourceTrimIntersection(t *testing.T) {
	s := newTestSession(t)
	s.SetTimeRange(&TimeRange{Start: 1500, End: 5000})
	s.SetTrim(true)
	s.SetOverlay(true)
	s.Play(testRef("cam1", 1, 1000, 2000))

	var p fakeProvider
	if _, err := s.Source(&p); err != nil {
		t.Fatal(err)
	}
	// 裁剪区间 = 时间范围 ∩ 录像区间
	if p.lastSub == nil || p.lastSub.Start != 1500 || p.lastSub.End != 2000 {
		t.Fatalf("sub = %+v", p.lastSub)
	}
	if !p.lastOverlay {
		t.Fatal("overlay flag lost")
	}
}

func TestSourceTrimWithoutRange(t *testing.T) {
	s := newTestSession(t)
	s.SetTrim(true)
	s.Play(testRef("cam1", 1, 0, 100))

	// 裁剪开启而时间范围未设置：显式拒绝而非悄悄回落为全段播放
	var p fakeProvider
	if _, err := s.Source(&p); err == nil {
		t.Fatal("expected error")
	}
}

func TestSourceWhenIdle(t *testing.T) {
	s := newTestSession(t)
	var p fakeProvider
	if _, err := s.Source(&p); err == nil {
		t.Fatal("expected error")
	}
}

func TestPlaybackLayoutLifecycle(t *testing.T) {
	s := newTestSession(t)

	// 播放前上报尺寸不产生适配结果（适配器随播放面挂载）
	s.Resize(aspect.Rect{Width: 1000, Height: 400})
	if got := s.Layout(); !got.IsZero() {
		t.Fatalf("layout before play = %+v", got)
	}

	// 进入播放：立即按当前容器尺寸适配
	s.Play(testRef("cam1", 1, 0, 100))
	if got := s.Layout(); got.Height != 400 {
		t.Fatalf("layout = %+v", got)
	}

	// 播放中跟随容器变化
	s.Resize(aspect.Rect{Width: 500, Height: 400})
	if got := s.Layout(); got.Width != 500 {
		t.Fatalf("layout = %+v", got)
	}

	// 零尺寸瞬态被忽略，保留上一次结果
	s.Resize(aspect.Rect{Width: 0, Height: 0})
	if got := s.Layout(); got.Width != 500 {
		t.Fatalf("layout after zero bounds = %+v", got)
	}

	// 关闭播放后订阅已释放，不再跟随
	s.Dismiss("close")
	s.Resize(aspect.Rect{Width: 800, Height: 600})
	if got := s.Layout(); got.Width != 500 {
		t.Fatalf("layout after dismiss = %+v", got)
	}
}
