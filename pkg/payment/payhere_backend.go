package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const HashPath = "/payhere/checkout"

// maxBodyLog caps how much of a backend body is kept in errors and logs.
const maxBodyLog = 512

// BackendHashProvider asks the application backend to sign an order.
type BackendHashProvider struct {
	BaseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewBackendHashProvider(baseURL string, timeout time.Duration, log *zap.Logger) *BackendHashProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &BackendHashProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.Named("hash_backend"),
	}
}

func (p *BackendHashProvider) FetchHash(ctx context.Context, req HashRequest) (*HashResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+HashPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build hash request: %w", err)
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, fmt.Errorf("hash request: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read hash response: %w", err)
	}
	p.log.Debug("hash response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody))}
	}

	var out HashResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

// truncate cuts s to at most maxBodyLog bytes without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxBodyLog {
		return s
	}
	cut := maxBodyLog
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
