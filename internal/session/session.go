package session

import (
	"sync"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// Session 操作员会话的内存状态
//
// 单用户工具，整个进程一份：当前对账数据集、DMS 参考数据、生效的
// 筛选条件。每次交互同步地读改写，锁只是挡住 HTTP 层的并发请求。
type Session struct {
	mu        sync.RWMutex
	dataset   *model.Dataset
	reference *model.Reference
	filter    model.FilterState
	lmsFile   string
	dmsFile   string
}

// New 创建空会话，筛选为默认全部/全部
func New() *Session {
	return &Session{filter: model.DefaultFilter()}
}

// SetDataset 替换当前数据集
func (s *Session) SetDataset(ds *model.Dataset, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.lmsFile = filename
}

// Dataset 当前数据集，未上传时返回 nil
func (s *Session) Dataset() *model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// SetReference 替换 DMS 参考数据
func (s *Session) SetReference(ref *model.Reference, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reference = ref
	s.dmsFile = filename
}

// Reference 当前参考数据，未上传时返回 nil
func (s *Session) Reference() *model.Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reference
}

// Filter 当前筛选条件
func (s *Session) Filter() model.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter 整体替换筛选条件（单元格快捷方式也走这里，一步到位）
func (s *Session) SetFilter(f model.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// ResetFilter 回到默认全部/全部
func (s *Session) ResetFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = model.DefaultFilter()
}

// Files 最近上传的文件名（状态展示用）
func (s *Session) Files() (lms, dms string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lmsFile, s.dmsFile
}
