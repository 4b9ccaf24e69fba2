package service

import (
	"sync"
	"time"
)

// Monitor 监控服务，用于统计错误和性能指标
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	DBErrors      int64
	PaymentErrors int64
	NotifyErrors  int64
	OrderErrors   int64
	WorkerErrors  int64

	// 性能统计
	OrderRequests   int64
	OrderSuccess    int64
	WorkerProcessed int64
	WorkerFailed    int64

	// 时间统计
	LastDBError      time.Time
	LastPaymentError time.Time
	LastOrderTime    time.Time
	LastWorkerTime   time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

// RecordDBError 记录数据库错误
func (m *Monitor) RecordDBError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors++
	m.LastDBError = time.Now()
}

// RecordPaymentError 记录支付网关错误
func (m *Monitor) RecordPaymentError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentErrors++
	m.LastPaymentError = time.Now()
}

// RecordNotifyError 记录通知发送错误
func (m *Monitor) RecordNotifyError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyErrors++
}

// RecordOrderRequest 记录下单请求
func (m *Monitor) RecordOrderRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderRequests++
	m.LastOrderTime = time.Now()
}

// RecordOrderSuccess 记录下单成功
func (m *Monitor) RecordOrderSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderSuccess++
}

// RecordOrderError 记录下单失败
func (m *Monitor) RecordOrderError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrderErrors++
}

// RecordWorkerProcessed 记录 Worker 处理成功
func (m *Monitor) RecordWorkerProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerProcessed++
	m.LastWorkerTime = time.Now()
}

// RecordWorkerFailed 记录 Worker 处理失败
func (m *Monitor) RecordWorkerFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerFailed++
	m.WorkerErrors++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.OrderRequests > 0 {
		successRate = float64(m.OrderSuccess) / float64(m.OrderRequests) * 100
	}

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"db":      m.DBErrors,
			"payment": m.PaymentErrors,
			"notify":  m.NotifyErrors,
			"order":   m.OrderErrors,
			"worker":  m.WorkerErrors,
		},
		"performance": map[string]interface{}{
			"order_requests":     m.OrderRequests,
			"order_success":      m.OrderSuccess,
			"order_success_rate": successRate,
			"worker_processed":   m.WorkerProcessed,
			"worker_failed":      m.WorkerFailed,
		},
		"last_events": map[string]interface{}{
			"db_error":      m.LastDBError,
			"payment_error": m.LastPaymentError,
			"last_order":    m.LastOrderTime,
			"last_worker":   m.LastWorkerTime,
		},
	}
}

// Reset 重置统计（用于测试或定期清理）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DBErrors = 0
	m.PaymentErrors = 0
	m.NotifyErrors = 0
	m.OrderErrors = 0
	m.WorkerErrors = 0
	m.OrderRequests = 0
	m.OrderSuccess = 0
	m.WorkerProcessed = 0
	m.WorkerFailed = 0
}
