package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// DefaultSkipRows LMS 导出前部的标题/说明块行数，这部分没有表格含义
const DefaultSkipRows = 5

// payloadColumn payload JSON 所在的列名（固定列序中位于 syllabus 之后）
const payloadColumn = "data"

// Options LMS 解析选项
type Options struct {
	Layout   model.Layout // 为空时按 LayoutLegacy 处理
	SkipRows int          // <0 时使用 DefaultSkipRows
}

// DetectLayout 根据列名集合判断布局版本
//
// 同时出现 time/response 两列是新版导出；出现 date 列是旧版。
func DetectLayout(columns []string) model.Layout {
	hasTime, hasResponse, hasDate := false, false, false
	for _, c := range columns {
		switch strings.TrimSpace(c) {
		case "time":
			hasTime = true
		case "response":
			hasResponse = true
		case "date":
			hasDate = true
		}
	}
	if hasTime && hasResponse {
		return model.LayoutV2
	}
	if hasDate {
		return model.LayoutLegacy
	}
	return model.LayoutLegacy
}

// fileColumns 文件内的实际列序（含 payload 列 data）
func fileColumns(l model.Layout) []string {
	switch l {
	case model.LayoutV2:
		return []string{"user_name", "user_code", "org", "code_syllabus", "syllabus", payloadColumn, "status", "time", "response"}
	default:
		return []string{"user_name", "user_code", "org", "code_syllabus", "syllabus", payloadColumn, "status", "date"}
	}
}

// ParseLMS 解析上传的 LMS Excel
//
// 跳过前 SkipRows 行标题块，之后每行都是数据（文件本身没有表头行），
// 按布局固定列序取值。payload 列逐行解析 JSON 并展开：
//   - legacy 布局全量展开，列集合取所有行的并集（首次出现顺序）
//   - v2 布局只提取证书相关三个字段，其余键丢弃
//
// 每个数据行都会产出一条记录，不丢行。
func ParseLMS(r io.Reader, opts Options) (*model.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	layout := opts.Layout
	if layout == "" {
		layout = model.LayoutLegacy
	}
	skip := opts.SkipRows
	if skip < 0 {
		skip = DefaultSkipRows
	}

	cols := fileColumns(layout)
	payloadIdx := -1
	for i, c := range cols {
		if c == payloadColumn {
			payloadIdx = i
		}
	}

	ds := &model.Dataset{
		Layout: layout,
		Rows:   []*model.Row{},
	}
	if layout == model.LayoutV2 {
		// 窄提取模式列集合固定，与行内容无关
		ds.ExtraColumns = []string{model.FieldCertificateNumber, model.FieldProducerID, model.FieldCertificate}
	}

	if len(rows) <= skip {
		return ds, nil
	}

	seen := make(map[string]bool)
	for _, raw := range rows[skip:] {
		get := func(i int) string {
			if i < 0 || i >= len(raw) {
				return ""
			}
			return strings.TrimSpace(raw[i])
		}

		extras, ok := DecodePayload(get(payloadIdx))
		if !ok {
			ds.DecodeFailures++
		}

		row := &model.Row{
			UserName:     get(0),
			UserCode:     get(1),
			Org:          get(2),
			CodeSyllabus: get(3),
			Syllabus:     get(4),
			Status:       get(6),
		}

		switch layout {
		case model.LayoutV2:
			row.Time = get(7)
			row.Response = get(8)
			row.Extras = map[string]string{
				model.FieldCertificateNumber: extras[model.FieldCertificateNumber],
				model.FieldProducerID:        extras[model.FieldProducerID],
				model.FieldCertificate:       extras[model.FieldCertificate],
			}
		default:
			row.Date = get(7)
			row.Extras = extras
			// 并集列序按键在数据中的首次出现顺序
			for _, k := range sortedKeysByAppearance(extras, raw, payloadIdx) {
				if !seen[k] {
					seen[k] = true
					ds.ExtraColumns = append(ds.ExtraColumns, k)
				}
			}
		}

		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

// sortedKeysByAppearance 按键在原始 JSON 文本中的出现位置排序
//
// map 遍历顺序不稳定，导出列序必须在重复运行间保持一致。
func sortedKeysByAppearance(extras map[string]string, raw []string, payloadIdx int) []string {
	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	src := ""
	if payloadIdx >= 0 && payloadIdx < len(raw) {
		src = raw[payloadIdx]
	}
	pos := func(k string) int {
		i := strings.Index(src, `"`+k+`"`)
		if i < 0 {
			return len(src)
		}
		return i
	}
	sort.Slice(keys, func(i, j int) bool { return pos(keys[i]) < pos(keys[j]) })
	return keys
}
