package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// ParseDMS 解析上传的 DMS 参考文件（带表头的 CSV）
//
// 对脏数据宽容：列数不齐的行按表头补空/截断，解析失败的行直接跳过。
func ParseDMS(data []byte) (*model.Reference, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	// 列数交给我们自己对齐
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	ref := &model.Reference{
		Columns: header,
		Rows:    []map[string]string{},
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		ref.Rows = append(ref.Rows, row)
	}

	return ref, nil
}
