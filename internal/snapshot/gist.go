package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nguyenxuanhoa493/check-cert/internal/model"
)

// gist 里承载快照内容的文件名
const gistFileName = "lms_share.json"

// Gist 远端后端：HTTPS + Bearer 凭证的 gist 风格对象服务
//
// 未配置凭证时 Put 直接返回 ErrUnavailable（不是异常）；Get 对公开
// 可读的标识不需要凭证。调用是同步阻塞的用户触发操作，失败不重试。
type Gist struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewGist 创建远端后端，token 可以为空
func NewGist(token string) *Gist {
	return &Gist{
		token:   token,
		baseURL: "https://api.github.com",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGistWithBaseURL 指定服务地址（测试用）
func NewGistWithBaseURL(token, baseURL string) *Gist {
	g := NewGist(token)
	g.baseURL = baseURL
	return g
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

type gistResponse struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Put 创建 gist，返回服务端分配的标识
func (g *Gist) Put(rows []*model.Row) (string, error) {
	if g.token == "" {
		return "", ErrUnavailable
	}

	content, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	body, err := json.Marshal(map[string]any{
		"description": "check-cert share",
		"public":      false,
		"files": map[string]any{
			gistFileName: map[string]string{"content": string(content)},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, g.baseURL+"/gists", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnavailable
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gist create failed: status %d", resp.StatusCode)
	}

	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode gist response: %w", err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("gist create failed: empty id")
	}
	return out.ID, nil
}

// Get 按标识取回快照
//
// 大内容服务端会截断：只要 truncated 置位或 content 为空，就无条件
// 走 raw_url 拉全量，不做大小启发。
func (g *Gist) Get(id string) ([]*model.Row, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	req, err := http.NewRequest(http.MethodGet, g.baseURL+"/gists/"+id, nil)
	if err != nil {
		return nil, err
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gist fetch failed: status %d", resp.StatusCode)
	}

	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gist response: %w", err)
	}

	file, ok := out.Files[gistFileName]
	if !ok {
		// 兼容手工创建的 gist：退回第一个文件
		for _, f := range out.Files {
			file, ok = f, true
			break
		}
	}
	if !ok {
		return nil, ErrNotFound
	}

	content := []byte(file.Content)
	if file.Truncated || file.Content == "" {
		if file.RawURL == "" {
			return nil, fmt.Errorf("gist content truncated and no raw_url")
		}
		content, err = g.fetchRaw(file.RawURL)
		if err != nil {
			return nil, err
		}
	}

	var rows []*model.Row
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
	}
	return rows, nil
}

func (g *Gist) fetchRaw(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raw content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("raw content fetch failed: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
