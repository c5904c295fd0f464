// Package client is a small HTTP client for the transferd API, used by the
// command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type User struct {
	Username    string   `json:"username"`
	Saldo       int64    `json:"saldo"`
	Favorecidos []string `json:"favorecidos"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Transfer struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Value     int64     `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) Register(ctx context.Context, username, password string, favorites []string) (*User, error) {
	body := map[string]any{"username": username, "password": password, "favorecidos": favorites}
	var out User
	if err := c.do(ctx, http.MethodPost, "/users/register", "", body, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]any{"username": username, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/users/login", "", body, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/users", "", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTransfer(ctx context.Context, token, from, to string, value int64) (*Transfer, error) {
	body := map[string]any{"from": from, "to": to, "value": value}
	var out Transfer
	if err := c.do(ctx, http.MethodPost, "/transfers", token, body, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTransfers(ctx context.Context, token string) ([]Transfer, error) {
	var out []Transfer
	if err := c.do(ctx, http.MethodGet, "/transfers", token, nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
