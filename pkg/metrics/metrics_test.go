package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if OrdersCreatedTotal == nil {
		t.Error("OrdersCreatedTotal未初始化")
	}
	if CircuitBreakerState == nil {
		t.Error("CircuitBreakerState未初始化")
	}
	if MessagesPublishedTotal == nil {
		t.Error("MessagesPublishedTotal未初始化")
	}

	// 重复初始化不应panic（promauto重复注册会panic,靠initialized守护）
	InitMetrics()
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	initial := getCounterValue(t, OrdersCreatedTotal)

	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)

	value := getCounterValue(t, OrdersCreatedTotal)
	if value != initial+3 {
		t.Errorf("Counter值错误: expected=%f, got=%f", initial+3, value)
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	IncCounterVec(HTTPRequestsTotal, map[string]string{
		"method": "POST",
		"path":   "/api/v1/orders/checkout",
		"status": "200",
	})
	IncCounterVec(HTTPRequestsTotal, map[string]string{
		"method": "GET",
		"path":   "/api/v1/books",
		"status": "200",
	})
	IncCounterVec(HTTPRequestsTotal, map[string]string{
		"method": "POST",
		"path":   "/api/v1/orders/checkout",
		"status": "200",
	})

	labels := map[string]string{
		"method": "POST",
		"path":   "/api/v1/orders/checkout",
		"status": "200",
	}
	value := getCounterVecValue(t, HTTPRequestsTotal, labels)
	if value != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", value)
	}
}

// TestGauge 测试Gauge指标
func TestGauge(t *testing.T) {
	InitMetrics()
	SetGauge(OrdersInProgress, 0)

	IncGauge(OrdersInProgress)
	IncGauge(OrdersInProgress)
	if v := getGaugeValue(t, OrdersInProgress); v != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", v)
	}

	DecGauge(OrdersInProgress)
	if v := getGaugeValue(t, OrdersInProgress); v != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", v)
	}

	SetGauge(OrdersInProgress, 10)
	if v := getGaugeValue(t, OrdersInProgress); v != 10 {
		t.Errorf("Gauge设置后值错误: expected=10, got=%f", v)
	}
}

// TestGaugeVec 测试GaugeVec指标
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	// 鉴权路径熔断器的状态同步
	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "auth-redis"}, 0) // CLOSED
	if v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "auth-redis"}); v != 0 {
		t.Errorf("GaugeVec值错误: expected=0, got=%f", v)
	}

	SetGaugeVec(CircuitBreakerState, map[string]string{"name": "auth-redis"}, 1) // OPEN
	if v := getGaugeVecValue(t, CircuitBreakerState, map[string]string{"name": "auth-redis"}); v != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", v)
	}
}

// TestHistogram 测试Histogram指标
func TestHistogram(t *testing.T) {
	InitMetrics()

	initialCount := getHistogramCount(t, OrderCreationDuration)
	initialSum := getHistogramSum(t, OrderCreationDuration)

	observations := []float64{0.05, 0.1, 0.5, 1.0, 5.0}
	var expectedSum float64
	for _, v := range observations {
		ObserveHistogram(OrderCreationDuration, v)
		expectedSum += v
	}

	count := getHistogramCount(t, OrderCreationDuration)
	if count != initialCount+uint64(len(observations)) {
		t.Errorf("Histogram观测次数错误: expected=%d, got=%d",
			initialCount+uint64(len(observations)), count)
	}

	sum := getHistogramSum(t, OrderCreationDuration)
	if sum != initialSum+expectedSum {
		t.Errorf("Histogram总和错误: expected=%f, got=%f", initialSum+expectedSum, sum)
	}
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/api/v1/orders/checkout"}
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "GET", "path": "/api/v1/books"}, 0.02)

	count := getHistogramVecCount(t, HTTPRequestDuration, labels)
	if count != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", count)
	}
}

// TestCheckoutScenario 模拟结算请求的完整指标记录
func TestCheckoutScenario(t *testing.T) {
	InitMetrics()
	SetGauge(HTTPRequestsInProgress, 0)

	for i := 0; i < 10; i++ {
		IncGauge(HTTPRequestsInProgress)

		start := time.Now()
		time.Sleep(5 * time.Millisecond)
		duration := time.Since(start).Seconds()

		ObserveHistogramVec(HTTPRequestDuration, map[string]string{
			"method": "POST",
			"path":   "/api/v1/orders/checkout",
		}, duration)
		IncCounterVec(HTTPRequestsTotal, map[string]string{
			"method": "POST",
			"path":   "/api/v1/orders/checkout",
			"status": "200",
		})

		DecGauge(HTTPRequestsInProgress)
	}

	// 请求全部结束,在途数归零
	if v := getGaugeValue(t, HTTPRequestsInProgress); v != 0 {
		t.Errorf("正在处理的请求数错误: expected=0, got=%f", v)
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	var metric dto.Metric
	gauge := gaugeVec.With(labels)
	if err := gauge.(prometheus.Gauge).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取Histogram观测次数
func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

// 辅助函数：获取Histogram总和
func getHistogramSum(t *testing.T, histogram prometheus.Histogram) float64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleSum()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
