package review

import "testing"

func TestChunksWithRemainder(t *testing.T) {
	// 时长 100，间隔 30 → 4 段 [30,30,30,10]
	rng := TimeRange{Start: 0, End: 100}
	chunks := rng.Chunks(30)
	if len(chunks) != 4 {
		t.Fatalf("len = %d", len(chunks))
	}
	want := []Time90k{30, 30, 30, 10}
	for i, c := range chunks {
		if c.Duration() != want[i] {
			t.Fatalf("chunk[%d] duration = %d, want %d", i, c.Duration(), want[i])
		}
	}
	// 分段连续且对齐区间起点
	if chunks[0].Start != 0 || chunks[3].End != 100 {
		t.Fatalf("chunks = %+v", chunks)
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start != chunks[i-1].End {
			t.Fatalf("gap between chunk %d and %d", i-1, i)
		}
	}
}

func TestChunksExactDivision(t *testing.T) {
	// 整除时无零长度尾段：时长 90，间隔 30 → 3 段 [30,30,30]
	rng := TimeRange{Start: 1000, End: 1090}
	chunks := rng.Chunks(30)
	if len(chunks) != 3 {
		t.Fatalf("len = %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Duration() != 30 {
			t.Fatalf("chunk[%d] duration = %d", i, c.Duration())
		}
	}
}

func TestTimelinesWithoutRange(t *testing.T) {
	// 未选择时间范围时不产生任何请求，即使已选中多路流
	streams := []Stream{
		{Camera: Camera{ID: "cam1"}, Kind: KindMain},
		{Camera: Camera{ID: "cam2"}, Kind: KindSub},
	}
	if got := Timelines(streams, nil, DefaultChunkInterval, false); len(got) != 0 {
		t.Fatalf("got %d requests", len(got))
	}
}

func TestTimelinesOrderAndPayload(t *testing.T) {
	streams := []Stream{
		{Camera: Camera{ID: "cam2"}, Kind: KindMain},
		{Camera: Camera{ID: "cam1"}, Kind: KindMain},
		{Camera: Camera{ID: "cam1"}, Kind: KindSub},
	}
	rng := TimeRange{Start: 100, End: 900}

	got := Timelines(streams, &rng, 250, true)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	// 顺序与选中顺序一致，所有请求携带相同的范围与间隔
	for i, req := range got {
		if !req.Stream.Equal(streams[i]) {
			t.Fatalf("request[%d] stream = %s", i, req.Stream.Key())
		}
		if req.Range != rng || req.ChunkInterval != 250 || !req.Trim {
			t.Fatalf("request[%d] = %+v", i, req)
		}
	}

	// 同样的输入重复派生，结果稳定
	again := Timelines(streams, &rng, 250, true)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("unstable derivation at %d", i)
		}
	}
}

func TestIntersect(t *testing.T) {
	a := TimeRange{Start: 100, End: 200}

	if got, ok := a.Intersect(TimeRange{Start: 150, End: 300}); !ok || got.Start != 150 || got.End != 200 {
		t.Fatalf("got = %+v ok = %v", got, ok)
	}
	if _, ok := a.Intersect(TimeRange{Start: 200, End: 300}); ok {
		t.Fatal("adjacent ranges must not intersect")
	}
	if got, ok := a.Intersect(TimeRange{Start: 0, End: 1000}); !ok || got != a {
		t.Fatalf("got = %+v ok = %v", got, ok)
	}
}
