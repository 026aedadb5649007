package book

import (
	"testing"
)

// TestBook_Stock 测试库存判定
func TestBook_Stock(t *testing.T) {
	b := NewBook("Go语言实战", "威廉·肯尼迪", 59.80, 3)

	if !b.InStock() {
		t.Error("在库数量3应判定为有货")
	}
	if !b.CanSupply(3) {
		t.Error("在库数量3应可满足请求3本")
	}
	if b.CanSupply(4) {
		t.Error("在库数量3不应满足请求4本")
	}

	b.Quantity = 0
	if b.InStock() {
		t.Error("在库数量0应判定为无货")
	}
	if !b.CanSupply(0) {
		t.Error("请求0本总是可满足")
	}

	// 负库存出现在员工补单欠货场景
	b.Quantity = -2
	if b.InStock() {
		t.Error("负库存应判定为无货")
	}
}

// TestBook_Overwrite 测试管理端整体覆盖更新
func TestBook_Overwrite(t *testing.T) {
	b := NewBook("Go语言实战", "威廉·肯尼迪", 59.80, 3)
	b.ID = 7

	b.Overwrite("Go语言实战(第二版)", "威廉·肯尼迪", 99.00, 20)

	if b.ID != 7 {
		t.Errorf("覆盖更新不应改变ID，实际%d", b.ID)
	}
	if b.Title != "Go语言实战(第二版)" || b.Price != 99.00 || b.Quantity != 20 {
		t.Errorf("覆盖更新结果错误: %+v", b)
	}
}
