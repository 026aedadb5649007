package book

import "testing"

// TestSearchParams_Normalize 测试分页参数规范化
func TestSearchParams_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"未传参取默认", 0, 0, 1, 10},
		{"正常参数不动", 3, 20, 3, 20},
		{"页大小超上限夹到100", 1, 500, 1, 100},
		{"页大小为负夹到1", 1, -5, 1, 1},
		{"页码为负夹到1", -3, 10, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SearchParams{Page: tt.page, PageSize: tt.pageSize}
			p.Normalize()
			if p.Page != tt.wantPage {
				t.Errorf("期望页码%d，实际%d", tt.wantPage, p.Page)
			}
			if p.PageSize != tt.wantPageSize {
				t.Errorf("期望页大小%d，实际%d", tt.wantPageSize, p.PageSize)
			}
		})
	}
}

// TestSearchParams_Offset 测试偏移量计算
func TestSearchParams_Offset(t *testing.T) {
	p := SearchParams{Page: 3, PageSize: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("期望偏移量40，实际%d", got)
	}

	p = SearchParams{Page: 1, PageSize: 10}
	if got := p.Offset(); got != 0 {
		t.Errorf("首页偏移量应为0，实际%d", got)
	}
}
