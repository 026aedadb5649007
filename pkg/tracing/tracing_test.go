package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// initTestTracer 初始化测试用Tracer
// OTLP gRPC连接是惰性建立的,没有Collector时Span创建仍然可用,
// 只是导出失败,因此shutdown的错误不做断言
func initTestTracer(t *testing.T) func() {
	shutdown, err := InitTracer("bookshop-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}
}

// TestInitTracer 测试Tracer初始化
func TestInitTracer(t *testing.T) {
	cleanup := initTestTracer(t)
	defer cleanup()

	// 全局TracerProvider已设置
	tracer := otel.Tracer("bookshop")
	if tracer == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建
func TestStartSpan(t *testing.T) {
	cleanup := initTestTracer(t)
	defer cleanup()

	t.Run("创建根Span", func(t *testing.T) {
		ctx := context.Background()

		_, span := StartSpan(ctx, "bookshop", "order.checkout")
		defer span.End()

		if !span.SpanContext().IsValid() {
			t.Error("Span无效")
		}

		traceID := span.SpanContext().TraceID().String()
		if traceID == "" || traceID == "00000000000000000000000000000000" {
			t.Errorf("TraceID无效: %s", traceID)
		}
	})

	t.Run("创建子Span", func(t *testing.T) {
		ctx := context.Background()

		ctx, rootSpan := StartSpan(ctx, "bookshop", "order.checkout")
		defer rootSpan.End()

		rootTraceID := rootSpan.SpanContext().TraceID().String()
		rootSpanID := rootSpan.SpanContext().SpanID().String()

		_, childSpan := StartSpan(ctx, "bookshop", "order.checkout.decrement_stock")
		defer childSpan.End()

		// 子Span继承根Span的TraceID,但SpanID不同
		if childSpan.SpanContext().TraceID().String() != rootTraceID {
			t.Errorf("子Span的TraceID不匹配: root=%s, child=%s",
				rootTraceID, childSpan.SpanContext().TraceID().String())
		}
		if childSpan.SpanContext().SpanID().String() == rootSpanID {
			t.Error("子Span的SpanID不应与根Span相同")
		}
	})
}

// TestSpanErrorStatus 测试错误记录
func TestSpanErrorStatus(t *testing.T) {
	cleanup := initTestTracer(t)
	defer cleanup()

	ctx := context.Background()
	_, span := StartSpan(ctx, "bookshop", "order.checkout")
	defer span.End()

	span.SetAttributes(
		attribute.Int("client_id", 42),
		attribute.Int("item_count", 3),
	)

	// 模拟库存不足失败
	err := context.DeadlineExceeded
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TestExtractTraceID 测试TraceID提取
func TestExtractTraceID(t *testing.T) {
	cleanup := initTestTracer(t)
	defer cleanup()

	t.Run("从有效Context提取", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "bookshop", "order.checkout")
		defer span.End()

		traceID := ExtractTraceID(ctx)
		if traceID == "" {
			t.Error("TraceID为空")
		}
		// 32位十六进制
		if len(traceID) != 32 {
			t.Errorf("TraceID长度错误: expected=32, got=%d", len(traceID))
		}
	})

	t.Run("从无Span的Context提取", func(t *testing.T) {
		traceID := ExtractTraceID(context.Background())
		if traceID != "" {
			t.Errorf("期望空字符串，实际: %s", traceID)
		}
	})
}

// TestExtractSpanID 测试SpanID提取
func TestExtractSpanID(t *testing.T) {
	cleanup := initTestTracer(t)
	defer cleanup()

	t.Run("从有效Context提取", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "bookshop", "order.checkout")
		defer span.End()

		spanID := ExtractSpanID(ctx)
		if spanID == "" {
			t.Error("SpanID为空")
		}
		// 16位十六进制
		if len(spanID) != 16 {
			t.Errorf("SpanID长度错误: expected=16, got=%d", len(spanID))
		}
	})

	t.Run("从无Span的Context提取", func(t *testing.T) {
		spanID := ExtractSpanID(context.Background())
		if spanID != "" {
			t.Errorf("期望空字符串，实际: %s", spanID)
		}
	})
}
