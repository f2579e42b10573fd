package model

// StatusAll 状态筛选的"全部"哨兵值
const StatusAll = "all"

// SyncFilter 同步状态筛选（三态）
type SyncFilter string

const (
	SyncAll   SyncFilter = "all"
	SyncTrue  SyncFilter = "true"
	SyncFalse SyncFilter = "false"
)

// Valid 是否为合法的三态值
func (s SyncFilter) Valid() bool {
	return s == SyncAll || s == SyncTrue || s == SyncFalse
}

// Matches 同步筛选是否命中某行的对账结果
func (s SyncFilter) Matches(done bool) bool {
	switch s {
	case SyncTrue:
		return done
	case SyncFalse:
		return !done
	default:
		return true
	}
}

// FilterState 当前生效的筛选条件
//
// 进程级状态由 server 持有，这里只是值对象：核心逻辑只消费/产出值，
// 不关心存取生命周期。
type FilterState struct {
	Status string     `json:"status"`
	Sync   SyncFilter `json:"sync"`
}

// DefaultFilter 默认筛选：全部/全部
func DefaultFilter() FilterState {
	return FilterState{Status: StatusAll, Sync: SyncAll}
}

// IsDefault 是否处于默认（未筛选）状态
func (f FilterState) IsDefault() bool {
	return f.Status == StatusAll && f.Sync == SyncAll
}
