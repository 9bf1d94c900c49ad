// Package upstream 封装对远端账户/任务服务的 HTTP 访问。
// 所有接口的响应都包在 {success, message, data} 信封里，
// 传输层错误与 success=false 在这里统一收敛成带消息的 error。
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qs3c/console_go_server/internal/model"
)

// Envelope 远端服务统一响应信封
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetUser 获取指定用户记录
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, fmt.Sprintf("/api/user/%d", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetSelf 获取当前登录用户自己的记录
func (c *Client) GetSelf(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/api/user/self", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser 更新其他用户，body 携带 id
func (c *Client) UpdateUser(ctx context.Context, user *model.User) error {
	return c.put(ctx, "/api/user/", user, nil)
}

// UpdateSelf 更新当前用户自己的记录
func (c *Client) UpdateSelf(ctx context.Context, user *model.User) error {
	return c.put(ctx, "/api/user/self", user, nil)
}

// GetGroups 获取全量分组名列表
func (c *Client) GetGroups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := c.get(ctx, "/api/group/", &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListBatchJobs 一次性获取全量批处理任务列表（无服务端分页参数）
func (c *Client) ListBatchJobs(ctx context.Context) ([]model.BatchJob, error) {
	var jobs []model.BatchJob
	if err := c.get(ctx, "/api/batch_job/list", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("请求远程服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("远程服务返回异常状态 %d: %s", resp.StatusCode, string(body))
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("解析远程服务响应失败: %w", err)
	}

	if !env.Success {
		if env.Message == "" {
			return errors.New("远程服务请求失败")
		}
		return errors.New(env.Message)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("解析远程服务数据失败: %w", err)
		}
	}
	return nil
}
