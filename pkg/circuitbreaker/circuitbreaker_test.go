package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

// errRedisDown 模拟鉴权路径上Redis黑名单查询失败
var errRedisDown = errors.New("redis: connection refused")

func newTestBreaker(timeout time.Duration, trip uint32) *CircuitBreaker {
	return NewCircuitBreaker("auth-redis", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
	})
}

// TestCircuitBreaker_ClosedState 测试关闭状态（Redis正常）
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := newTestBreaker(30*time.Second, 5)

	// 连续成功的黑名单查询
	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error {
			return nil
		})
		if err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED，实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次，实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_OpenState 测试打开状态（Redis持续故障后熔断）
func TestCircuitBreaker_OpenState(t *testing.T) {
	cb := newTestBreaker(30*time.Second, 5)

	// 连续失败5次触发熔断
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return errRedisDown
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("期望状态为OPEN，实际%s", cb.State())
	}

	// 熔断打开后请求快速失败,不再触达Redis
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != ErrOpenState {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开状态探测成功后恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errRedisDown
		})
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN，实际%s", cb.State())
	}

	// 等待超时,进入半开
	time.Sleep(150 * time.Millisecond)

	// 探测请求（Redis恢复）
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if err != nil {
		t.Errorf("半开状态探测请求期望成功，实际%v", err)
	}
	if !called {
		t.Error("半开状态应该放行探测请求")
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态转为CLOSED，实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenToOpen 测试半开状态探测失败后转回打开
func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errRedisDown
		})
	}

	time.Sleep(150 * time.Millisecond)

	// 半开状态下探测仍然失败
	_ = cb.Execute(func() error {
		return errRedisDown
	})

	if cb.State() != StateOpen {
		t.Errorf("期望状态转回OPEN，实际%s", cb.State())
	}
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(100*time.Millisecond, 3)

	stateChanges := make([]string, 0)
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		stateChanges = append(stateChanges, from.String()+"->"+to.String())
	})

	// CLOSED -> OPEN
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error {
			return errRedisDown
		})
	}

	// OPEN -> HALF_OPEN -> CLOSED
	time.Sleep(150 * time.Millisecond)
	_ = cb.Execute(func() error {
		return nil
	})

	expected := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(stateChanges) != len(expected) {
		t.Fatalf("期望%d次状态变化，实际%d次: %v", len(expected), len(stateChanges), stateChanges)
	}
	for i := range expected {
		if stateChanges[i] != expected[i] {
			t.Errorf("第%d次状态变化期望%s，实际%s", i, expected[i], stateChanges[i])
		}
	}
}

// TestCircuitBreaker_FailureRate 测试基于失败率的熔断
func TestCircuitBreaker_FailureRate(t *testing.T) {
	cb := NewCircuitBreaker("auth-redis", Config{
		MaxRequests: 3,
		Interval:    1 * time.Hour, // 长窗口,避免统计被周期重置
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.Requests >= 10 && counts.FailureRate() > 0.5
		},
	})

	// 前5次成功,后6次失败,失败率超过50%
	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error {
			return nil
		})
	}
	for i := 0; i < 6; i++ {
		_ = cb.Execute(func() error {
			return errRedisDown
		})
	}

	if cb.State() != StateOpen {
		t.Errorf("失败率超阈值后期望状态为OPEN，实际%s", cb.State())
	}
}
