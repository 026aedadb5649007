package cart

import (
	"errors"
	"testing"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func testBook(id uint, title string, price float64, quantity int) *book.Book {
	return &book.Book{ID: id, Title: title, Author: "测试作者", Price: price, Quantity: quantity}
}

// TestCart_Add 测试加购
func TestCart_Add(t *testing.T) {
	t.Run("加购新条目", func(t *testing.T) {
		c := New()
		b := testBook(1, "Go语言实战", 59.80, 10)

		if err := c.Add(b, 2); err != nil {
			t.Fatalf("加购失败: %v", err)
		}

		if len(c.Entries) != 1 {
			t.Fatalf("期望1个条目，实际%d个", len(c.Entries))
		}
		e := c.Entries[0]
		if e.BookID != 1 || e.Title != "Go语言实战" || e.Price != 59.80 || e.Quantity != 2 {
			t.Errorf("条目内容错误: %+v", e)
		}
	})

	t.Run("重复加购累加数量", func(t *testing.T) {
		c := New()
		b := testBook(1, "Go语言实战", 59.80, 10)

		_ = c.Add(b, 2)
		_ = c.Add(b, 3)

		if len(c.Entries) != 1 {
			t.Fatalf("期望合并为1个条目，实际%d个", len(c.Entries))
		}
		if c.Entries[0].Quantity != 5 {
			t.Errorf("期望数量5，实际%d", c.Entries[0].Quantity)
		}
	})

	t.Run("请求数量小于1按1算", func(t *testing.T) {
		c := New()
		b := testBook(1, "Go语言实战", 59.80, 10)

		if err := c.Add(b, 0); err != nil {
			t.Fatalf("加购失败: %v", err)
		}
		if c.Entries[0].Quantity != 1 {
			t.Errorf("期望数量1，实际%d", c.Entries[0].Quantity)
		}

		if err := c.Add(b, -5); err != nil {
			t.Fatalf("加购失败: %v", err)
		}
		if c.Entries[0].Quantity != 2 {
			t.Errorf("期望数量2，实际%d", c.Entries[0].Quantity)
		}
	})

	t.Run("无货图书不可加购", func(t *testing.T) {
		c := New()
		b := testBook(2, "绝版图书", 100.00, 0)

		err := c.Add(b, 1)
		if !errors.Is(err, book.ErrOutOfStock) {
			t.Errorf("期望ErrOutOfStock，实际%v", err)
		}
		if !c.IsEmpty() {
			t.Error("加购失败后购物车应保持为空")
		}
	})

	t.Run("累计数量超过库存", func(t *testing.T) {
		c := New()
		b := testBook(1, "Go语言实战", 59.80, 5)

		_ = c.Add(b, 3)
		err := c.Add(b, 3)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("期望AppError，实际%v", err)
		}
		if appErr.Code != apperrors.ErrCodeInsufficientStock {
			t.Errorf("期望错误码%d，实际%d", apperrors.ErrCodeInsufficientStock, appErr.Code)
		}
		// 失败的加购不改变车内数量
		if c.Entries[0].Quantity != 3 {
			t.Errorf("期望数量保持3，实际%d", c.Entries[0].Quantity)
		}
	})
}

// TestCart_PriceSnapshot 测试加购时刻的价格快照
func TestCart_PriceSnapshot(t *testing.T) {
	c := New()
	b := testBook(1, "Go语言实战", 59.80, 10)

	_ = c.Add(b, 2)

	// 目录改价不影响已在车里的条目
	b.Price = 99.00
	b.Title = "Go语言实战(第二版)"

	if c.Entries[0].Price != 59.80 {
		t.Errorf("期望快照价59.80，实际%f", c.Entries[0].Price)
	}
	if c.Entries[0].Title != "Go语言实战" {
		t.Errorf("期望快照书名，实际%s", c.Entries[0].Title)
	}
	if total := c.Total(); total != 119.60 {
		t.Errorf("期望合计119.60，实际%f", total)
	}
}

// TestCart_Remove 测试移除条目
func TestCart_Remove(t *testing.T) {
	c := New()
	_ = c.Add(testBook(1, "图书A", 10.00, 5), 1)
	_ = c.Add(testBook(2, "图书B", 20.00, 5), 1)

	c.Remove(1)
	if len(c.Entries) != 1 || c.Entries[0].BookID != 2 {
		t.Errorf("移除后条目错误: %+v", c.Entries)
	}

	// 幂等:移除不存在的条目不报错
	c.Remove(99)
	if len(c.Entries) != 1 {
		t.Errorf("期望1个条目，实际%d个", len(c.Entries))
	}
}

// TestCart_InsertionOrder 测试条目保持加购顺序
func TestCart_InsertionOrder(t *testing.T) {
	c := New()
	_ = c.Add(testBook(3, "图书C", 30.00, 5), 1)
	_ = c.Add(testBook(1, "图书A", 10.00, 5), 1)
	_ = c.Add(testBook(2, "图书B", 20.00, 5), 1)

	// 补加已有条目不改变其位置
	_ = c.Add(testBook(3, "图书C", 30.00, 5), 2)

	want := []uint{3, 1, 2}
	for i, e := range c.Entries {
		if e.BookID != want[i] {
			t.Fatalf("第%d个条目期望图书%d，实际%d", i, want[i], e.BookID)
		}
	}
}

// TestCart_Clear 测试清空
func TestCart_Clear(t *testing.T) {
	c := New()
	_ = c.Add(testBook(1, "图书A", 10.00, 5), 2)

	c.Clear()
	if !c.IsEmpty() {
		t.Error("清空后购物车应为空")
	}
	if c.Total() != 0 {
		t.Errorf("清空后合计应为0，实际%f", c.Total())
	}
}
