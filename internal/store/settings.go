package store

import (
	"database/sql"
	"fmt"
)

// 设置项 key
const (
	SettingLayoutOverride = "layout_override"
	SettingShareBackend   = "share_backend"
)

// GetSetting 获取设置项
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("setting key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// GetSettingDefault 获取设置项，缺失时返回默认值
func (s *Store) GetSettingDefault(key, def string) string {
	v, err := s.GetSetting(key)
	if err != nil {
		return def
	}
	return v
}

// SetSetting 设置项写入（upsert）
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}
