package filter

import (
	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// Apply 按筛选条件取子序列
//
// 纯函数：保序、不改写输入行，幂等。status 精确匹配，sync 三态。
func Apply(rows []*model.Row, state model.FilterState) []*model.Row {
	out := make([]*model.Row, 0, len(rows))
	for _, r := range rows {
		if state.Status != model.StatusAll && r.Status != state.Status {
			continue
		}
		if !state.Sync.Matches(r.SyncDone) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ForCell 交叉表单元格快捷筛选：一步设置 (status, sync)
func ForCell(status string, synced bool) model.FilterState {
	sync := model.SyncFalse
	if synced {
		sync = model.SyncTrue
	}
	return model.FilterState{Status: status, Sync: sync}
}

// ForStatusTotal 行合计快捷筛选：status 定值，sync 回到全部
func ForStatusTotal(status string) model.FilterState {
	return model.FilterState{Status: status, Sync: model.SyncAll}
}
