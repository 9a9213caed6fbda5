package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"terraguide_api/config"
	"terraguide_api/models"
)

// HTTPClassifier 调用外部推理服务的Classifier实现
// 推理服务接收图片字节，返回类别下标、标签和置信度
type HTTPClassifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClassifier 创建HTTP推理客户端
func NewHTTPClassifier(cfg *config.Config) *HTTPClassifier {
	timeout := cfg.Classifier.TimeoutSec
	if timeout <= 0 {
		timeout = 30
	}
	return &HTTPClassifier{
		baseURL: cfg.Classifier.BaseURL,
		apiKey:  cfg.Classifier.APIKey,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Classify 提交图片并解析分类结果
func (c *HTTPClassifier) Classify(ctx context.Context, image []byte) (*models.ClassifierResult, error) {
	url := c.baseURL + "/v1/classify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %v", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("推理服务请求失败: %d - %s", resp.StatusCode, string(body))
	}

	var result models.ClassifierResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("解析响应失败: %v", err)
	}

	return &result, nil
}

// Healthcheck 检查推理服务是否可达
func (c *HTTPClassifier) Healthcheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthcheck", nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("推理服务状态异常: %d", resp.StatusCode)
	}
	return nil
}
