package notify

import (
	"sync"

	"go.uber.org/zap"
)

// 领域事件名
const (
	EventUserCreated    = "user_created"
	EventOrderCreated   = "order_created"
	EventOrderCancelled = "order_cancelled"
)

// Payload 事件负载，内容由发布方决定
type Payload map[string]interface{}

// Listener 事件监听器
type Listener interface {
	Name() string
	Handle(event string, payload Payload) error
}

// Dispatcher 进程内发布订阅：按订阅顺序广播，单个监听器失败不影响其他监听器
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewDispatcher 创建独立的分发器（测试时使用独立实例避免监听器串扰）
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

var (
	defaultDispatcher *Dispatcher
	defaultOnce       sync.Once
)

// Default 进程级共享分发器
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher()
	})
	return defaultDispatcher
}

// Subscribe 注册监听器，追加到队尾
func (d *Dispatcher) Subscribe(l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// Unsubscribe 移除监听器，未注册时为 no-op
func (d *Dispatcher) Unsubscribe(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, registered := range d.listeners {
		if registered == l {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Notify 按订阅顺序同步广播事件。监听器返回的 error 和 panic 都只记录日志，
// Notify 本身永不失败，每次调用对当前已订阅的监听器至多投递一次。
func (d *Dispatcher) Notify(event string, payload Payload) {
	d.mu.RLock()
	snapshot := make([]Listener, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, l := range snapshot {
		d.deliver(l, event, payload)
	}
}

func (d *Dispatcher) deliver(l Listener, event string, payload Payload) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("notify listener panicked",
				zap.String("listener", l.Name()),
				zap.String("event", event),
				zap.Any("panic", r))
		}
	}()
	if err := l.Handle(event, payload); err != nil {
		zap.L().Error("notify listener failed",
			zap.String("listener", l.Name()),
			zap.String("event", event),
			zap.Error(err))
	}
}

// Len 当前监听器数量
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}
