package store

import "fmt"

// UploadLog 一次上传+对账的记录
type UploadLog struct {
	ID          int64  `json:"id"`
	UploadID    string `json:"uploadId"`
	Kind        string `json:"kind"`
	Filename    string `json:"filename"`
	RowCount    int    `json:"rowCount"`
	SyncedCount int    `json:"syncedCount"`
	CreatedAt   string `json:"createdAt"`
}

// CreateUploadLog 写入一条上传日志
func (s *Store) CreateUploadLog(uploadID, kind, filename string, rowCount, syncedCount int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (upload_id, kind, filename, row_count, synced_count)
		VALUES (?, ?, ?, ?, ?)
	`, uploadID, kind, filename, rowCount, syncedCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// ListUploadLogs 按时间倒序取最近 limit 条
func (s *Store) ListUploadLogs(limit int) ([]*UploadLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, upload_id, kind, filename, row_count, synced_count, created_at
		FROM upload_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*UploadLog, 0, limit)
	for rows.Next() {
		l := &UploadLog{}
		if err := rows.Scan(&l.ID, &l.UploadID, &l.Kind, &l.Filename, &l.RowCount, &l.SyncedCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
