package parser_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
	"github.com/nguyenxuanhoa493/check-cert/internal/parser"
)

// buildLMSWorkbook 构造测试用 LMS 文件：前 5 行标题块 + 数据行
func buildLMSWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "BÁO CÁO KẾT QUẢ HỌC TẬP"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A3", "Đơn vị: ABC"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, parser.DefaultSkipRows+1+i)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &rows[i]); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseLMS_Legacy(t *testing.T) {
	r := buildLMSWorkbook(t, [][]interface{}{
		{"Nguyễn Văn A", "U001", "Org1", "SYL01", "Khóa 1", `{"CERTIFICATENUMBER":"C-100","EXTRA":"x"}`, "Thành công", "2024-01-02"},
		{"Trần Thị B", "U002", "Org1", "SYL01", "Khóa 1", `{"CERTIFICATENUMBER":"C-101"}`, "Lỗi", "2024-01-03"},
	})

	ds, err := parser.ParseLMS(r, parser.Options{Layout: model.LayoutLegacy, SkipRows: parser.DefaultSkipRows})
	if err != nil {
		t.Fatalf("ParseLMS failed: %v", err)
	}

	if len(ds.Rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(ds.Rows))
	}

	row := ds.Rows[0]
	if row.UserName != "Nguyễn Văn A" || row.UserCode != "U001" {
		t.Fatalf("row0 = %+v", row)
	}
	if row.Status != "Thành công" || row.Date != "2024-01-02" {
		t.Fatalf("status=%q date=%q", row.Status, row.Date)
	}
	if row.Extra("CERTIFICATENUMBER") != "C-100" {
		t.Fatalf("CERTIFICATENUMBER=%q", row.Extra("CERTIFICATENUMBER"))
	}

	// 全量展开：列集合是所有行键的并集，按首次出现顺序
	want := []string{"CERTIFICATENUMBER", "EXTRA"}
	if len(ds.ExtraColumns) != len(want) {
		t.Fatalf("ExtraColumns=%v", ds.ExtraColumns)
	}
	for i, c := range want {
		if ds.ExtraColumns[i] != c {
			t.Fatalf("ExtraColumns=%v, want %v", ds.ExtraColumns, want)
		}
	}

	// 第二行没有 EXTRA 键，取值为空
	if ds.Rows[1].Extra("EXTRA") != "" {
		t.Fatalf("missing key should read as empty")
	}
}

func TestParseLMS_V2NarrowExtract(t *testing.T) {
	r := buildLMSWorkbook(t, [][]interface{}{
		{"A", "U001", "Org", "S", "K", `{"PRODUCERID":"P01","CERTIFICATE":"C9","CERTIFICATENUMBER":"N1","IGNORED":"zz"}`, "Thành công", "2024-01-02 10:00", "OK"},
	})

	ds, err := parser.ParseLMS(r, parser.Options{Layout: model.LayoutV2, SkipRows: parser.DefaultSkipRows})
	if err != nil {
		t.Fatalf("ParseLMS failed: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(ds.Rows))
	}

	row := ds.Rows[0]
	if row.Time != "2024-01-02 10:00" || row.Response != "OK" {
		t.Fatalf("time=%q response=%q", row.Time, row.Response)
	}
	if row.Extra("PRODUCERID") != "P01" || row.Extra("CERTIFICATE") != "C9" {
		t.Fatalf("extras=%v", row.Extras)
	}
	// 窄提取：其余键丢弃
	if _, ok := row.Extras["IGNORED"]; ok {
		t.Fatalf("IGNORED should be dropped in narrow mode")
	}
	if len(ds.ExtraColumns) != 3 {
		t.Fatalf("ExtraColumns=%v", ds.ExtraColumns)
	}
}

func TestParseLMS_RowCountInvariant(t *testing.T) {
	// 每个数据行都产出一条记录，payload 坏掉也不丢行
	rows := [][]interface{}{
		{"A", "U1", "O", "S", "K", `{"CERTIFICATENUMBER":"C1"}`, "Thành công", "d"},
		{"B", "U2", "O", "S", "K", `{broken`, "Lỗi", "d"},
		{"C", "U3", "O", "S", "K", "", "Lỗi", "d"},
	}
	ds, err := parser.ParseLMS(buildLMSWorkbook(t, rows), parser.Options{Layout: model.LayoutLegacy, SkipRows: parser.DefaultSkipRows})
	if err != nil {
		t.Fatalf("ParseLMS failed: %v", err)
	}
	if len(ds.Rows) != len(rows) {
		t.Fatalf("rows=%d, want %d", len(ds.Rows), len(rows))
	}
	if ds.DecodeFailures != 1 {
		t.Fatalf("DecodeFailures=%d, want 1", ds.DecodeFailures)
	}
	// 解析失败的行继续走流程，附加字段为空
	if ds.Rows[1].Extra("CERTIFICATENUMBER") != "" {
		t.Fatalf("broken payload row should have empty extras")
	}
}

func TestParseLMS_OnlyPreamble(t *testing.T) {
	ds, err := parser.ParseLMS(buildLMSWorkbook(t, nil), parser.Options{Layout: model.LayoutLegacy, SkipRows: parser.DefaultSkipRows})
	if err != nil {
		t.Fatalf("ParseLMS failed: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Fatalf("rows=%d, want 0", len(ds.Rows))
	}
}

func TestDetectLayout(t *testing.T) {
	cases := []struct {
		columns []string
		want    model.Layout
	}{
		{[]string{"user_name", "status", "date"}, model.LayoutLegacy},
		{[]string{"user_name", "status", "time", "response"}, model.LayoutV2},
		{[]string{"user_name", "status", "time"}, model.LayoutLegacy},
		{[]string{}, model.LayoutLegacy},
	}
	for _, tc := range cases {
		if got := parser.DetectLayout(tc.columns); got != tc.want {
			t.Fatalf("DetectLayout(%v)=%v, want %v", tc.columns, got, tc.want)
		}
	}
}
