package reconcile

import (
	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// Reconcile 计算每条 LMS 记录的 sync_dmn_done，就地写入 ds.Rows
//
// sync_dmn_done 只是集合成员判断，不是一对一匹配：DMS 侧 key 重复
// 不影响结果。参考文件缺失、或任一侧缺少 key 字段时，整体退化为
// 全 false，不报错。
func Reconcile(ds *model.Dataset, ref *model.Reference) {
	scheme := SchemeForLayout(ds.Layout)
	keys := ReferenceKeySet(ref, scheme)

	for _, row := range ds.Rows {
		if len(keys) == 0 {
			row.SyncDone = false
			continue
		}
		_, ok := keys[scheme.Key(row.Extra)]
		row.SyncDone = ok
	}
}

// ReferenceKeySet 把 DMS 记录映射成 key 集合
//
// 数据量可达几万行，成员测试必须 O(1)，用 map 而不是线性扫描。
// key 字段全空的行剔除（LMS 侧退化出来的空 key 绝不能靠它们误判
// 为已同步），key 重复自然坍缩。
func ReferenceKeySet(ref *model.Reference, scheme KeyScheme) map[string]struct{} {
	if ref == nil {
		return nil
	}

	// 任一 key 字段在列集合里缺席，整体退化
	for _, f := range scheme.Fields() {
		found := false
		for _, c := range ref.Columns {
			if c == f {
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	set := make(map[string]struct{}, len(ref.Rows))
	for _, r := range ref.Rows {
		empty := true
		for _, f := range scheme.Fields() {
			if r[f] != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		set[scheme.Key(func(f string) string { return r[f] })] = struct{}{}
	}
	return set
}
