package review

import (
	"log/slog"
	"time"

	"github.com/ixugo/goddd/pkg/conc"
	"github.com/ixugo/goddd/pkg/reason"
)

// DefaultSessionTTL 会话空闲超时，超时未操作的会话将被回收
const DefaultSessionTTL = 30 * time.Minute

// Manager 回看会话注册表
// 会话随视图挂载创建、随视图卸载销毁；空闲会话由清理协程兜底回收
type Manager struct {
	core     Core
	ttl      time.Duration
	sessions conc.Map[string, *Session]
	quit     chan struct{}
}

// NewManager 创建会话管理器并启动空闲回收协程
func NewManager(core Core) *Manager {
	ttl := DefaultSessionTTL
	if core.conf != nil && core.conf.SessionTTLSeconds > 0 {
		ttl = time.Duration(core.conf.SessionTTLSeconds) * time.Second
	}
	m := Manager{
		core: core,
		ttl:  ttl,
		quit: make(chan struct{}, 1),
	}
	go m.tickCleanup()
	return &m
}

// Core 领域服务
func (m *Manager) Core() Core {
	return m.core
}

// CreateSession 创建回看会话
func (m *Manager) CreateSession(in *CreateSessionInput) (*Session, error) {
	chunk := m.core.DefaultChunk()
	if in.ChunkSeconds > 0 {
		chunk = Time90k(in.ChunkSeconds) * TicksPerSecond
	}
	s, err := NewSession(in.TimeZone, in.ControlsVisible, chunk)
	if err != nil {
		return nil, reason.ErrBadRequest.Withf("time_zone[%s] err[%s]", in.TimeZone, err.Error())
	}
	m.sessions.Store(s.ID, s)
	slog.Info("review session created", "session", s.ID, "time_zone", in.TimeZone)
	return s, nil
}

// GetSession 按 ID 获取会话
func (m *Manager) GetSession(id string) (*Session, error) {
	s, ok := m.sessions.Load(id)
	if !ok {
		return nil, reason.ErrNotFound.Withf("session[%s] not found", id)
	}
	return s, nil
}

// CloseSession 销毁会话并释放其全部订阅
// 会话不存在时为空操作
func (m *Manager) CloseSession(id string) {
	s, ok := m.sessions.Load(id)
	if !ok {
		return
	}
	m.sessions.Delete(id)
	s.Close()
	slog.Info("review session closed", "session", id)
}

// Close 停止管理器并销毁全部会话
func (m *Manager) Close() {
	close(m.quit)
	m.sessions.Range(func(id string, s *Session) bool {
		m.sessions.Delete(id)
		s.Close()
		return true
	})
}

// tickCleanup 定时回收空闲会话
// 客户端异常断开时不会调用 DELETE，依赖这里释放挂着的订阅
func (m *Manager) tickCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.quit:
			return
		case <-ticker.C:
			now := time.Now()
			m.sessions.Range(func(id string, s *Session) bool {
				if now.Sub(s.LastActive()) < m.ttl {
					return true
				}
				m.sessions.Delete(id)
				s.Close()
				slog.Info("idle review session reclaimed", "session", id, "ttl", m.ttl.String())
				return true
			})
		}
	}
}
