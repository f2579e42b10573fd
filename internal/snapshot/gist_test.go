package snapshot_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyenxuanhoa493/check-cert/internal/snapshot"
)

func TestGist_PutWithoutToken(t *testing.T) {
	store := snapshot.NewGist("")
	if _, err := store.Put(sampleRows()); !errors.Is(err, snapshot.ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}

func TestGist_PutAndGet(t *testing.T) {
	var stored string

	mux := http.NewServeMux()
	mux.HandleFunc("/gists", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req struct {
			Files map[string]struct {
				Content string `json:"content"`
			} `json:"files"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		stored = req.Files["lms_share.json"].Content
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"abc123def"}`)
	})
	mux.HandleFunc("/gists/abc123def", func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id": "abc123def",
			"files": map[string]any{
				"lms_share.json": map[string]any{
					"content":   stored,
					"truncated": false,
					"raw_url":   "",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := snapshot.NewGistWithBaseURL("tok123", srv.URL)

	id, err := store.Put(sampleRows())
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if id != "abc123def" {
		t.Fatalf("id=%q", id)
	}

	rows, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(rows) != 2 || rows[0].UserCode != "U1" {
		t.Fatalf("rows=%+v", rows)
	}
}

func TestGist_GetTruncatedFollowsRawURL(t *testing.T) {
	content, _ := json.Marshal(sampleRows())

	mux := http.NewServeMux()
	var rawURL string
	mux.HandleFunc("/raw/full", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(content)
	})
	mux.HandleFunc("/gists/big1", func(w http.ResponseWriter, r *http.Request) {
		// 截断响应：content 只有一半，truncated 置位
		resp := map[string]any{
			"id": "big1",
			"files": map[string]any{
				"lms_share.json": map[string]any{
					"content":   string(content[:10]),
					"truncated": true,
					"raw_url":   rawURL,
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/gists/empty1", func(w http.ResponseWriter, r *http.Request) {
		// content 缺失也要走 raw_url，不做大小启发
		resp := map[string]any{
			"id": "empty1",
			"files": map[string]any{
				"lms_share.json": map[string]any{
					"content": "",
					"raw_url": rawURL,
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	rawURL = srv.URL + "/raw/full"

	store := snapshot.NewGistWithBaseURL("", srv.URL)

	for _, id := range []string{"big1", "empty1"} {
		rows, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get(%s) failed: %v", id, err)
		}
		if len(rows) != 2 {
			t.Fatalf("Get(%s): rows=%d, want 2", id, len(rows))
		}
	}
}

func TestGist_GetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := snapshot.NewGistWithBaseURL("", srv.URL)
	if _, err := store.Get("missing1"); !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestGist_PutUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := snapshot.NewGistWithBaseURL("badtoken", srv.URL)
	if _, err := store.Put(sampleRows()); !errors.Is(err, snapshot.ErrUnavailable) {
		t.Fatalf("err=%v, want ErrUnavailable", err)
	}
}
