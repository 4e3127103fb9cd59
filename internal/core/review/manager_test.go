package review

import "testing"

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(NewCore(nil))
	defer m.Close()

	s, err := m.CreateSession(&CreateSessionInput{TimeZone: "Asia/Shanghai", ControlsVisible: true})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" {
		t.Fatal("empty session id")
	}

	got, err := m.GetSession(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatal("lookup returned a different session")
	}

	m.CloseSession(s.ID)
	if _, err := m.GetSession(s.ID); err == nil {
		t.Fatal("closed session still reachable")
	}

	// 重复关闭是空操作
	m.CloseSession(s.ID)
}

func TestManagerRejectsBadTimeZone(t *testing.T) {
	m := NewManager(NewCore(nil))
	defer m.Close()

	if _, err := m.CreateSession(&CreateSessionInput{TimeZone: "Not/AZone"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestManagerCustomChunk(t *testing.T) {
	m := NewManager(NewCore(nil))
	defer m.Close()

	s, err := m.CreateSession(&CreateSessionInput{ChunkSeconds: 1800})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.ChunkInterval(); got != 1800*TicksPerSecond {
		t.Fatalf("chunk = %d", got)
	}
}
