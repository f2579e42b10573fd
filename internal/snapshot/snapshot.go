package snapshot

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

var (
	// ErrNotFound 快照不存在或不可访问
	ErrNotFound = errors.New("snapshot not found")
	// ErrUnavailable 后端不可用（远端未配置凭证等）
	ErrUnavailable = errors.New("snapshot backend unavailable")
)

// Store 快照存取后端
//
// Put 存入完整（未筛选）的对账结果并返回短标识；Get 按标识取回。
// 快照只增不改：过期/删除是外部存储的事。
type Store interface {
	Put(rows []*model.Row) (string, error)
	Get(id string) ([]*model.Row, error)
}

// NewID 生成短标识：随机 UUID 的前 8 位十六进制
func NewID() string {
	return uuid.New().String()[:8]
}

// Restore 从快照行序列重建数据集
//
// 快照文件只存行对象数组，布局和动态列序需要重建：出现 time/response
// 值的是新版布局；旧版的动态列取所有行键的并集，按字典序排定
// （快照载入后的列序与原会话可能不同，但重复载入之间保持一致）。
func Restore(rows []*model.Row) *model.Dataset {
	if rows == nil {
		rows = []*model.Row{}
	}

	layout := model.LayoutLegacy
	for _, r := range rows {
		if r.Time != "" || r.Response != "" {
			layout = model.LayoutV2
			break
		}
	}

	ds := &model.Dataset{Layout: layout, Rows: rows}
	if layout == model.LayoutV2 {
		ds.ExtraColumns = []string{model.FieldCertificateNumber, model.FieldProducerID, model.FieldCertificate}
		return ds
	}

	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r.Extras {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	ds.ExtraColumns = cols
	return ds
}
