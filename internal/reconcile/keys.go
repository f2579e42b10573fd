package reconcile

import (
	"strings"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// KeyScheme 对账 key 的构造策略
//
// 两侧必须用同一个策略、同一套拼接规则生成 key，否则全部匹配会
// 静默落空。新增策略只需要加一个枚举值和字段列表，成员测试逻辑不动。
type KeyScheme string

const (
	// SchemeCertificate 旧版：单字段 CERTIFICATENUMBER
	SchemeCertificate KeyScheme = "certificate"
	// SchemeProducerCertificate 新版：PRODUCERID + "_" + CERTIFICATE
	SchemeProducerCertificate KeyScheme = "producer_certificate"
)

// SchemeForLayout 按导出布局选择 key 策略
func SchemeForLayout(l model.Layout) KeyScheme {
	if l == model.LayoutV2 {
		return SchemeProducerCertificate
	}
	return SchemeCertificate
}

// Fields 参与构造 key 的字段名，按拼接顺序
func (s KeyScheme) Fields() []string {
	switch s {
	case SchemeProducerCertificate:
		return []string{model.FieldProducerID, model.FieldCertificate}
	default:
		return []string{model.FieldCertificateNumber}
	}
}

// Key 用取值函数构造 key，缺失值一律当空串拼接
func (s KeyScheme) Key(get func(string) string) string {
	fields := s.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = get(f)
	}
	return strings.Join(parts, "_")
}
