// Package authclient talks to the external identity service that owns user
// and department records. The sync job is its only consumer.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkpharma/asset-registry/internal/config"
)

// Client is a thin HTTP client for the identity service. It holds no token
// cache: each sync run performs a fresh login and reuses that token for the
// run's requests.
type Client struct {
	baseURL      string
	employeeCode string
	password     string
	httpClient   *http.Client
}

// RemoteUser is an account as the identity service reports it.
type RemoteUser struct {
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Avatar       string `json:"avatar"`
	PhoneNumber  string `json:"phoneNumber"`
	Sex          string `json:"sex"`
}

// RemoteDepartment is a department as the identity service reports it.
type RemoteDepartment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TeamLeader  string `json:"team_leader"`
}

func NewClient(cfg *config.AuthServiceConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		employeeCode: cfg.EmployeeCode,
		password:     cfg.Password,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Login authenticates the service account and returns the bearer token for
// subsequent calls.
func (c *Client) Login(ctx context.Context) (string, error) {
	reqBody := map[string]string{
		"employee_code": c.employeeCode,
		"password":      c.password,
	}
	bodyBytes, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/auth/login", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("identity service login returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Token string `json:"token"`
		Data  struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}

	token := result.Token
	if token == "" {
		token = result.Data.Token
	}
	if token == "" {
		return "", fmt.Errorf("identity service login returned no token")
	}
	return token, nil
}

// ListUsers fetches every account the identity service knows about.
func (c *Client) ListUsers(ctx context.Context, token string) ([]RemoteUser, error) {
	var users []RemoteUser
	if err := c.getJSON(ctx, token, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListDepartments fetches every department from the identity service.
func (c *Client) ListDepartments(ctx context.Context, token string) ([]RemoteDepartment, error) {
	var departments []RemoteDepartment
	if err := c.getJSON(ctx, token, "/api/departments", &departments); err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (c *Client) getJSON(ctx context.Context, token, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	// Responses may be either a bare array or wrapped in {"data": [...]}.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(raw, result); err == nil {
		return nil
	}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(wrapped.Data, result); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
