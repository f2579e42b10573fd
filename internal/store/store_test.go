package store_test

import (
	"path/filepath"
	"testing"

	"github.com/nguyenxuanhoa493/check-cert/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUploadLogs(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreateUploadLog("id-1", "lms", "a.xlsx", 10, 5); err != nil {
		t.Fatalf("CreateUploadLog failed: %v", err)
	}
	if _, err := s.CreateUploadLog("id-2", "dms", "b.csv", 6, 5); err != nil {
		t.Fatalf("CreateUploadLog failed: %v", err)
	}

	logs, err := s.ListUploadLogs(20)
	if err != nil {
		t.Fatalf("ListUploadLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs=%d, want 2", len(logs))
	}
	// 倒序：最新的在前
	if logs[0].UploadID != "id-2" || logs[0].Kind != "dms" {
		t.Fatalf("logs[0]=%+v", logs[0])
	}
	if logs[1].Filename != "a.xlsx" || logs[1].RowCount != 10 || logs[1].SyncedCount != 5 {
		t.Fatalf("logs[1]=%+v", logs[1])
	}
}

func TestUploadLogs_Limit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.CreateUploadLog("id", "lms", "f.xlsx", 1, 0); err != nil {
			t.Fatalf("CreateUploadLog failed: %v", err)
		}
	}
	logs, err := s.ListUploadLogs(3)
	if err != nil {
		t.Fatalf("ListUploadLogs failed: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("logs=%d, want 3", len(logs))
	}
}

func TestSettings(t *testing.T) {
	s := newTestStore(t)

	if got := s.GetSettingDefault(store.SettingLayoutOverride, "legacy"); got != "legacy" {
		t.Fatalf("default=%q", got)
	}

	if err := s.SetSetting(store.SettingLayoutOverride, "v2"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	got, err := s.GetSetting(store.SettingLayoutOverride)
	if err != nil || got != "v2" {
		t.Fatalf("GetSetting = %q, %v", got, err)
	}

	// upsert 覆盖
	if err := s.SetSetting(store.SettingLayoutOverride, "legacy"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if got := s.GetSettingDefault(store.SettingLayoutOverride, ""); got != "legacy" {
		t.Fatalf("after upsert = %q", got)
	}
}
