package assign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	kd "LandKingdom/internal/kingdom/domain"
)

// Client 通过王国的 HTTP 接口执行额外铸造的管理命令。
type Client struct {
	base  string
	token string
	http  *http.Client
}

func NewClient(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

type apiResp struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Reason string `json:"reason"`
}

func (c *Client) AssignSlots(ctx context.Context, users []kd.Address, slots []uint64) error {
	return c.post(ctx, "/kingdom/extramint/slots/assign", map[string]any{"users": users, "slots": slots})
}

func (c *Client) SetTotalSupply(ctx context.Context, n uint64) error {
	return c.post(ctx, "/kingdom/extramint/total-supply", map[string]any{"totalSupply": n})
}

func (c *Client) SetMintEndTime(ctx context.Context, ts int64) error {
	return c.post(ctx, "/kingdom/extramint/end-time", map[string]any{"endTime": ts})
}

func (c *Client) SetMintEnabled(ctx context.Context, enabled bool) error {
	return c.post(ctx, "/kingdom/extramint/enabled", map[string]any{"enabled": enabled})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("POST %s: read body: %w", path, err)
	}
	var out apiResp
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, string(data))
	}
	if out.Code != 0 {
		return fmt.Errorf("POST %s: code=%d reason=%s msg=%s", path, out.Code, out.Reason, out.Msg)
	}
	return nil
}
