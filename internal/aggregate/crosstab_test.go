package aggregate_test

import (
	"testing"

	"github.com/nguyenxuanhoa493/check-cert/internal/aggregate"
	"github.com/nguyenxuanhoa493/check-cert/internal/filter"
	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

func row(status string, synced bool) *model.Row {
	return &model.Row{Status: status, SyncDone: synced}
}

// 10 行示例：7 Thành công（5 已同步）+ 3 Lỗi
func sampleRows() []*model.Row {
	rows := []*model.Row{}
	for i := 0; i < 5; i++ {
		rows = append(rows, row("Thành công", true))
	}
	rows = append(rows, row("Thành công", false), row("Thành công", false))
	for i := 0; i < 3; i++ {
		rows = append(rows, row("Lỗi", false))
	}
	return rows
}

func TestBuild(t *testing.T) {
	ct := aggregate.Build(sampleRows())

	if len(ct.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(ct.Rows))
	}

	// 行序按首次出现
	tc := ct.Rows[0]
	if tc.Status != "Thành công" || tc.Synced != 5 || tc.Unsynced != 2 || tc.Total != 7 {
		t.Fatalf("Thành công row = %+v", tc)
	}

	loi := ct.Rows[1]
	// 零计数的组合也要以 0 出现
	if loi.Status != "Lỗi" || loi.Synced != 0 || loi.Unsynced != 3 || loi.Total != 3 {
		t.Fatalf("Lỗi row = %+v", loi)
	}

	if ct.Total.Total != 10 || ct.Total.Synced != 5 || ct.Total.Unsynced != 5 {
		t.Fatalf("total = %+v", ct.Total)
	}
}

func TestBuild_CellsMatchIndependentFilter(t *testing.T) {
	rows := sampleRows()
	ct := aggregate.Build(rows)

	for _, r := range ct.Rows {
		synced := len(filter.Apply(rows, filter.ForCell(r.Status, true)))
		unsynced := len(filter.Apply(rows, filter.ForCell(r.Status, false)))
		if r.Synced != synced || r.Unsynced != unsynced {
			t.Fatalf("%s: crosstab (%d,%d) != filter (%d,%d)", r.Status, r.Synced, r.Unsynced, synced, unsynced)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	rows := sampleRows()
	a := aggregate.Build(rows)
	b := aggregate.Build(rows)
	if len(a.Rows) != len(b.Rows) {
		t.Fatalf("row counts differ")
	}
	for i := range a.Rows {
		if a.Rows[i] != b.Rows[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, a.Rows[i], b.Rows[i])
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	ct := aggregate.Build(nil)
	if len(ct.Rows) != 0 || ct.Total.Total != 0 {
		t.Fatalf("empty input: %+v", ct)
	}
}
