// Package circuitbreaker 实现熔断器模式
//
// 书店里它保护的是鉴权路径上的Redis会话黑名单查询:
// Redis故障时每个请求都等超时会拖垮整个API,熔断打开后
// 黑名单检查快速失败,中间件降级放行
//
// 三种状态:
// - CLOSED: 正常,统计失败次数,达到阈值转OPEN
// - OPEN: 快速失败,不再调用下游,超时后转HALF_OPEN
// - HALF_OPEN: 放少量探测请求,成功转CLOSED,失败转回OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/xiebiao/bookshop/pkg/metrics"
)

// State 熔断器状态
type State int

const (
	// StateClosed 关闭状态（正常放行并统计）
	StateClosed State = iota

	// StateOpen 打开状态（快速失败,给下游恢复时间）
	StateOpen

	// StateHalfOpen 半开状态（放少量请求探测下游是否恢复）
	StateHalfOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的最大探测请求数
	MaxRequests uint32

	// Interval CLOSED状态的统计时间窗口
	Interval time.Duration

	// Timeout OPEN状态持续时间,过后转HALF_OPEN
	Timeout time.Duration

	// ReadyToTrip 判断是否应该打开熔断器
	// 常见策略:
	// - 连续失败: counts.ConsecutiveFailures >= 5
	// - 失败率: counts.FailureRate() > 0.5
	ReadyToTrip func(counts Counts) bool
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 计算失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

// Reset 重置统计
func (c *Counts) Reset() {
	c.Requests = 0
	c.TotalSuccesses = 0
	c.TotalFailures = 0
	c.ConsecutiveSuccesses = 0
	c.ConsecutiveFailures = 0
}

// onSuccess 记录成功
// Requests已在beforeRequest中递增,这里不再重复
func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

// onFailure 记录失败
func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(counts Counts) bool
	state         State
	generation    uint64 // 生成号,每次状态切换递增
	counts        Counts
	expiry        time.Time // 统计窗口/OPEN状态的过期时间
	mu            sync.Mutex
	onStateChange func(name string, from State, to State)
}

// ErrOpenState 熔断器打开错误
var ErrOpenState = errors.New("circuit breaker is open")

// NewCircuitBreaker 创建熔断器
//
// 示例：
//
//	cb := NewCircuitBreaker("auth-redis", Config{
//	    MaxRequests: 3,
//	    Interval:    10 * time.Second,
//	    Timeout:     30 * time.Second,
//	    ReadyToTrip: func(counts Counts) bool {
//	        return counts.ConsecutiveFailures >= 5
//	    },
//	})
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:        name,
		maxRequests: config.MaxRequests,
		interval:    config.Interval,
		timeout:     config.Timeout,
		readyToTrip: config.ReadyToTrip,
		state:       StateClosed,
		counts:      Counts{},
		expiry:      time.Now().Add(config.Interval),
	}
	// 默认回调:同步状态到监控指标
	cb.onStateChange = func(name string, from State, to State) {
		if metrics.CircuitBreakerState != nil {
			metrics.SetGaugeVec(metrics.CircuitBreakerState,
				map[string]string{"name": name}, float64(to))
		}
	}

	return cb
}

// SetStateChangeCallback 覆盖状态变化回调(日志、告警)
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from State, to State)) {
	cb.onStateChange = fn
}

// Execute 执行请求
// 返回业务错误或ErrOpenState(熔断打开时快速失败)
//
// 示例：
//
//	err := cb.Execute(func() error {
//	    revoked, err = sessionStore.IsRevoked(ctx, sessionID)
//	    return err
//	})
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		cb.recordResult("rejected")
		return err
	}

	err = req()
	cb.afterRequest(generation, err == nil)

	if err == nil {
		cb.recordResult("success")
	} else {
		cb.recordResult("failure")
	}
	return err
}

// recordResult 上报请求结果指标
func (cb *CircuitBreaker) recordResult(result string) {
	if metrics.CircuitBreakerRequests != nil {
		metrics.IncCounterVec(metrics.CircuitBreakerRequests,
			map[string]string{"name": cb.name, "result": result})
	}
}

// beforeRequest 请求前检查,熔断打开时返回ErrOpenState
func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)

	if state == StateOpen {
		return generation, ErrOpenState
	} else if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		// 半开状态的探测名额已用完
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

// afterRequest 记录结果并推动状态转换
// 生成号不匹配说明期间状态已切换,本次结果作废
func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.onSuccess(state, now)
	} else {
		cb.onFailure(state, now)
	}
}

func (cb *CircuitBreaker) onSuccess(state State, now time.Time) {
	cb.counts.onSuccess()

	if state == StateHalfOpen {
		// 探测成功,恢复正常
		cb.setState(StateClosed, now)
	}
}

func (cb *CircuitBreaker) onFailure(state State, now time.Time) {
	cb.counts.onFailure()

	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		// 探测失败,立即转回打开
		cb.setState(StateOpen, now)
	}
}

// currentState 获取当前状态,处理窗口过期与OPEN→HALF_OPEN转换
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.Reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}

	return cb.state, cb.generation
}

// setState 切换状态(调用方必须持有锁)
func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.Reset()

	switch state {
	case StateClosed:
		cb.expiry = now.Add(cb.interval)
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{} // 半开状态没有过期时间
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

// State 获取当前状态（只读）
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, _ := cb.currentState(now)
	return state
}

// Counts 获取当前统计数据（只读）
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}
