package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// 下载用的固定文件名和 MIME 类型
const (
	FilteredFilename = "lms_filtered.xlsx"
	SummaryFilename  = "lms_summary.xlsx"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Filtered 导出当前筛选视图：单 sheet，带表头，列序与数据集列序一致
//
// 导出只读数据集，不做任何改写。
func Filtered(ds *model.Dataset, rows []*model.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "LMS"); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSheet(f, "LMS", ds, rows); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Summary 从未筛选的完整数据集导出三分类工作簿
//
// 三个 sheet：全量、status 不等于成功哨兵值的行、status 等于哨兵值
// 但未同步的行。按字符串精确相等分类。后两个 sheet 互斥，和
// "成功且已同步"的行并起来正好是全量。
func Summary(ds *model.Dataset, successStatus string) (*excelize.File, error) {
	var notSuccess []*model.Row
	var successNotSynced []*model.Row
	for _, r := range ds.Rows {
		if r.Status != successStatus {
			notSuccess = append(notSuccess, r)
		} else if !r.SyncDone {
			successNotSynced = append(successNotSynced, r)
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "all"); err != nil {
		_ = f.Close()
		return nil, err
	}
	sheets := []struct {
		name string
		rows []*model.Row
	}{
		{"all", ds.Rows},
		{"not_success", notSuccess},
		{"success_not_synced", successNotSynced},
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		if err := writeSheet(f, s.name, ds, s.rows); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// writeSheet 写入表头行 + 数据行
func writeSheet(f *excelize.File, sheet string, ds *model.Dataset, rows []*model.Row) error {
	header := toAny(ds.Columns())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := toAny(ds.RowValues(r))
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
