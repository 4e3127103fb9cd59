package review

import "testing"

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("", false, 0)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAddStreamRejectsDuplicate(t *testing.T) {
	s := newTestSession(t)

	stream := Stream{Camera: Camera{ID: "cam1", Name: "门口"}, Kind: KindMain}
	if !s.AddStream(stream) {
		t.Fatal("first insertion rejected")
	}

	// 同一 (摄像机, 流类型) 即使来自另一次查询也必须判重
	dup := Stream{Camera: Camera{ID: "cam1", Name: "门口-改名"}, Kind: KindMain}
	if s.AddStream(dup) {
		t.Fatal("duplicate insertion accepted")
	}
	if got := s.Streams(); len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}

	// 不同流类型不算重复
	if !s.AddStream(Stream{Camera: Camera{ID: "cam1"}, Kind: KindSub}) {
		t.Fatal("different kind rejected")
	}
}

func TestSetStreamsDeduplicates(t *testing.T) {
	s := newTestSession(t)
	s.SetStreams([]Stream{
		{Camera: Camera{ID: "a"}, Kind: KindMain},
		{Camera: Camera{ID: "b"}, Kind: KindMain},
		{Camera: Camera{ID: "a"}, Kind: KindMain},
	})

	got := s.Streams()
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Camera.ID != "a" || got[1].Camera.ID != "b" {
		t.Fatalf("order broken: %v", got)
	}
}

func TestSettersNotify(t *testing.T) {
	s := newTestSession(t)

	notified := 0
	cancel := s.WatchRevision(func(int64) { notified++ })
	defer cancel()

	s.SetTimeRange(&TimeRange{Start: 0, End: 100})
	s.SetTrim(true)
	s.SetOverlay(true)
	s.SetChunkInterval(30 * TicksPerSecond)

	if notified != 4 {
		t.Fatalf("notified = %d", notified)
	}
}

func TestSessionTimelines(t *testing.T) {
	s := newTestSession(t)
	s.SetStreams([]Stream{
		{Camera: Camera{ID: "cam1"}, Kind: KindMain},
		{Camera: Camera{ID: "cam2"}, Kind: KindMain},
	})

	// 空时间范围 → 空列表
	if got := s.Timelines(); len(got) != 0 {
		t.Fatalf("len = %d", len(got))
	}

	s.SetTimeRange(&TimeRange{Start: 0, End: 10 * TicksPerSecond})
	got := s.Timelines()
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ChunkInterval != DefaultChunkInterval {
		t.Fatalf("chunk = %d", got[0].ChunkInterval)
	}
}

func TestSetChunkIntervalFallsBack(t *testing.T) {
	s := newTestSession(t)
	s.SetChunkInterval(0)
	if got := s.ChunkInterval(); got != DefaultChunkInterval {
		t.Fatalf("chunk = %d", got)
	}
}

func TestInvalidTimeZone(t *testing.T) {
	if _, err := NewSession("Mars/Olympus", false, 0); err == nil {
		t.Fatal("expected error")
	}
}
