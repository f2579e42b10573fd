package aggregate

import (
	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// CrosstabRow 交叉表的一行：某个 status 按同步结果的计数
type CrosstabRow struct {
	Status   string `json:"status"`
	Synced   int    `json:"synced"`
	Unsynced int    `json:"unsynced"`
	Total    int    `json:"total"`
}

// Crosstab status × sync_dmn_done 的密集交叉表
//
// 零计数的组合也要以 0 出现，前端直接按行渲染。行序取 status 在
// 数据中的首次出现顺序，同一份输入重复统计结果一致。
type Crosstab struct {
	Rows  []CrosstabRow `json:"rows"`
	Total CrosstabRow   `json:"total"`
}

// Build 统计对账结果
func Build(rows []*model.Row) *Crosstab {
	ct := &Crosstab{Rows: []CrosstabRow{}}
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.Status]
		if !ok {
			i = len(ct.Rows)
			index[r.Status] = i
			ct.Rows = append(ct.Rows, CrosstabRow{Status: r.Status})
		}
		if r.SyncDone {
			ct.Rows[i].Synced++
			ct.Total.Synced++
		} else {
			ct.Rows[i].Unsynced++
			ct.Total.Unsynced++
		}
		ct.Rows[i].Total++
		ct.Total.Total++
	}

	return ct
}
