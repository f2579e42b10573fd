package parser

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DecodePayload 解析行内嵌的 payload JSON 对象
//
// 约定：空串 -> 空对象；非法 JSON -> 空对象，绝不报错（上游导出经常
// 截断这一列，解析失败按"没有附加字段"处理）。第二个返回值标记本次
// 解析是否成功，失败计数由调用方按 !ok 累加，仅用于诊断。
func DecodePayload(raw string) (map[string]string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]string{}, true
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return map[string]string{}, false
	}

	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = coerceString(v)
	}
	return out, true
}

// coerceString 把 payload 值统一转成字符串
//
// 数值型证书号必须和 DMS 里的字符串形式相等，所以整数值不能带小数点。
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
