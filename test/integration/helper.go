//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xiebiao/catalog/pkg/jwt"
)

// 集成测试依赖已启动的api服务:
//
//	go test -tags integration ./test/integration/...
//
// CATALOG_BASE_URL 和 CATALOG_JWT_SECRET 可覆盖默认值

const Timeout = 10 * time.Second

var (
	BaseURL   = envOr("CATALOG_BASE_URL", "http://localhost:8080/api/v1")
	jwtSecret = envOr("CATALOG_JWT_SECRET", "your-secret-key-change-in-production")
)

// Response 统一响应结构
type Response struct {
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Total      int64           `json:"total"`
	Matched    int64           `json:"matched"`
	Page       *int            `json:"page"`
	Size       *int            `json:"size"`
}

// ProductData 商品详情
type ProductData struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	CategoryID uint   `json:"categoryId"`
	Atributes  []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	} `json:"atributes"`
	Variants []struct {
		ID        uint    `json:"id"`
		Price     string  `json:"price"`
		Stock     int     `json:"stock"`
		DeletedAt *string `json:"deletedAt"`
	} `json:"variants"`
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Token 用服务端相同的密钥签发操作员令牌
func Token(t *testing.T) string {
	token, err := jwt.NewManager(jwtSecret, "catalog", time.Hour).GenerateToken(1, "integration")
	require.NoError(t, err)
	return token
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, path string, body interface{}, token string) (int, *Response) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "JSON序列化失败")
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, BaseURL+path, reader)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return resp.StatusCode, &result
}

// CreateID 创建资源并返回新ID
func CreateID(t *testing.T, path string, body interface{}, token string) uint {
	code, resp := Do(t, http.MethodPost, path, body, token)
	require.Equal(t, http.StatusCreated, code, "创建失败: %s", resp.Message)

	var id uint
	require.NoError(t, json.Unmarshal(resp.Data, &id))
	return id
}

// UniqueName 生成带时间戳的名称，避免重复运行时冲突
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
