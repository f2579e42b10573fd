package model

// payload 中参与对账 key 的字段名（LMS 导出里的原始大写键名）
const (
	FieldCertificateNumber = "CERTIFICATENUMBER"
	FieldProducerID        = "PRODUCERID"
	FieldCertificate       = "CERTIFICATE"
)

// SyncColumn 对账结果列名
const SyncColumn = "sync_dmn_done"

// Layout LMS 导出文件的列布局版本
type Layout string

const (
	// LayoutLegacy 旧版导出：末列为 date，payload 全量展开
	LayoutLegacy Layout = "legacy"
	// LayoutV2 新版导出：末列为 time + response，payload 只提取证书相关字段
	LayoutV2 Layout = "v2"
)

// BaseColumns 布局对应的固定列名（按列序，payload 列 data 除外）
func (l Layout) BaseColumns() []string {
	switch l {
	case LayoutV2:
		return []string{"user_name", "user_code", "org", "code_syllabus", "syllabus", "status", "time", "response"}
	default:
		return []string{"user_name", "user_code", "org", "code_syllabus", "syllabus", "status", "date"}
	}
}

// Row 对账后的一条 LMS 记录
//
// 固定列 + payload 展开出来的动态列（Extras）。payload 键与固定列同名时
// 固定列优先，payload 值丢弃（上游不应出现这种键名）。
type Row struct {
	UserName     string            `json:"user_name"`
	UserCode     string            `json:"user_code"`
	Org          string            `json:"org"`
	CodeSyllabus string            `json:"code_syllabus"`
	Syllabus     string            `json:"syllabus"`
	Status       string            `json:"status"`
	Date         string            `json:"date,omitempty"`
	Time         string            `json:"time,omitempty"`
	Response     string            `json:"response,omitempty"`
	Extras       map[string]string `json:"extras"`
	SyncDone     bool              `json:"sync_dmn_done"`
}

// Extra 读取 payload 展开字段，缺失返回空串
func (r *Row) Extra(key string) string {
	if r.Extras == nil {
		return ""
	}
	return r.Extras[key]
}

// BaseValues 按布局列序返回固定列的值
func (r *Row) BaseValues(l Layout) []string {
	switch l {
	case LayoutV2:
		return []string{r.UserName, r.UserCode, r.Org, r.CodeSyllabus, r.Syllabus, r.Status, r.Time, r.Response}
	default:
		return []string{r.UserName, r.UserCode, r.Org, r.CodeSyllabus, r.Syllabus, r.Status, r.Date}
	}
}

// Dataset 一次上传解析+对账后的完整结果
type Dataset struct {
	Layout Layout `json:"layout"`
	// ExtraColumns payload 展开字段的并集，按首次出现顺序，决定导出列序
	ExtraColumns []string `json:"extra_columns"`
	Rows         []*Row   `json:"rows"`
	// DecodeFailures payload JSON 解析失败的行数（仅诊断用，不影响流程）
	DecodeFailures int `json:"decode_failures,omitempty"`
}

// Columns 完整列序：固定列 + 动态列 + 对账结果列
func (d *Dataset) Columns() []string {
	cols := append([]string{}, d.Layout.BaseColumns()...)
	cols = append(cols, d.ExtraColumns...)
	return append(cols, SyncColumn)
}

// RowValues 按 Columns 顺序返回一行的所有值
func (d *Dataset) RowValues(r *Row) []string {
	vals := r.BaseValues(d.Layout)
	for _, col := range d.ExtraColumns {
		vals = append(vals, r.Extra(col))
	}
	if r.SyncDone {
		return append(vals, "true")
	}
	return append(vals, "false")
}

// Reference DMS 参考文件解析结果（列名 -> 值 的记录集合）
type Reference struct {
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}
