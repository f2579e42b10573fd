package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// Local 本地文件后端：每个快照一个 <id>.json，整文件读写
type Local struct {
	dir string
}

// NewLocal 创建本地后端，目录首次写入时创建
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Put 序列化为 JSON 数组并落盘
func (l *Local) Put(rows []*model.Row) (string, error) {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	id := NewID()
	if err := os.WriteFile(l.path(id), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return id, nil
}

// Get 按标识读取，不存在返回 ErrNotFound
func (l *Local) Get(id string) ([]*model.Row, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(l.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var rows []*model.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	return rows, nil
}

func (l *Local) path(id string) string {
	return filepath.Join(l.dir, id+".json")
}

// validID 标识只允许短 token，拒绝路径穿越
func validID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	return !strings.ContainsAny(id, `/\.`)
}
