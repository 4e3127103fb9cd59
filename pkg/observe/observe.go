// Package observe 提供带订阅通知的状态单元
// 每次 Set 同步通知全部订阅者，派生值由订阅方按最新状态重新计算
// 不做增量缓存，避免派生状态与源状态不一致
package observe

import "sync"

// Value 可观察状态单元
type Value[T any] struct {
	mu   sync.Mutex
	v    T
	subs map[uint64]func(T)
	next uint64
}

// NewValue 创建状态单元并设置初始值
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[uint64]func(T))}
}

// Get 读取当前值
func (c *Value[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

// Set 写入新值并同步通知订阅者
// 通知在调用方协程内完成，两次 Set 的通知不会交错
func (c *Value[T]) Set(v T) {
	c.mu.Lock()
	c.v = v
	fns := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe 订阅变化，返回取消函数
// 取消函数幂等，重复调用只注销一次
func (c *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Len 当前订阅者数量，便于测试释放逻辑
func (c *Value[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
