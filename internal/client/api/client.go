// Package api implements the HTTPS client for the keepsafe server.
// All calls except Register authenticate with the client certificate
// issued at registration.
package api

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/akazakov/keepsafe/internal/models"
)

const userSecretsPath = "/api/v1/user-secrets"

// Client talks to the keepsafe server over mutual TLS.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// RegisterResult is the response of POST /api/v1/register.
type RegisterResult struct {
	Cert   string `json:"cert"`
	Key    string `json:"key"`
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
}

// CreateSecretResponse is the response of POST /api/v1/user-secrets.
type CreateSecretResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ListSecretsResponse is the response of GET /api/v1/user-secrets.
type ListSecretsResponse struct {
	Status      string              `json:"status"`
	TotalCount  int                 `json:"totalCount"`
	UserSecrets []models.UserSecret `json:"userSecrets"`
}

// UpdateSecretResponse is the response of PUT /api/v1/user-secrets.
type UpdateSecretResponse struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteSecretResponse is the response of DELETE /api/v1/user-secrets/{id}.
type DeleteSecretResponse struct {
	Status string `json:"status"`
}

// CreateSecretPayload is the request body for creating a secret.
type CreateSecretPayload struct {
	SecretType         string  `json:"secretType"`
	SecretName         string  `json:"secretName"`
	Username           *string `json:"username,omitempty"`
	Password           *string `json:"password,omitempty"`
	CardholderName     *string `json:"cardholderName,omitempty"`
	CardNumber         *string `json:"cardNumber,omitempty"`
	CardExpirationDate *string `json:"cardExpirationDate,omitempty"`
	CardSecurityCode   *string `json:"cardSecurityCode,omitempty"`
	Title              *string `json:"title,omitempty"`
	Content            *string `json:"content,omitempty"`
	AdditionalNotes    *string `json:"additionalNotes,omitempty"`
}

// SetField assigns the optional field with the given JSON key. Keys
// outside the optional set are ignored.
func (p *CreateSecretPayload) SetField(key string, value *string) {
	switch key {
	case "username":
		p.Username = value
	case "password":
		p.Password = value
	case "cardholderName":
		p.CardholderName = value
	case "cardNumber":
		p.CardNumber = value
	case "cardExpirationDate":
		p.CardExpirationDate = value
	case "cardSecurityCode":
		p.CardSecurityCode = value
	case "title":
		p.Title = value
	case "content":
		p.Content = value
	case "additionalNotes":
		p.AdditionalNotes = value
	}
}

// UpdateSecretPayload is the request body for updating a secret. Absent
// fields stay untouched on the server.
type UpdateSecretPayload struct {
	ID         string `json:"id"`
	SecretType string `json:"secretType"`
	models.UserSecretUpdate
}

// Register requests a client certificate for a new login and writes the
// returned cert and key to certFile and keyFile.
func Register(baseURL, login, caFile, certFile, keyFile string) (*RegisterResult, error) {
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: caPool}}}

	b, _ := json.Marshal(map[string]string{"login": login})
	resp, err := client.Post(baseURL+"/api/v1/register", "application/json", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("register failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server error: %s", string(data))
	}

	var result RegisterResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := os.WriteFile(certFile, []byte(result.Cert), 0600); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", certFile, err)
	}
	if err := os.WriteFile(keyFile, []byte(result.Key), 0600); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", keyFile, err)
	}
	return &result, nil
}

// New loads the client certificate and CA bundle and returns a Client
// ready to call the authenticated endpoints.
func New(baseURL, certFile, keyFile, caFile string) (*Client, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert/key: %w", err)
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	caPool.AppendCertsFromPEM(caCert)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			RootCAs:      caPool,
		},
	}
	return &Client{
		HTTP:    &http.Client{Transport: transport, Timeout: 10 * time.Second},
		BaseURL: baseURL,
	}, nil
}

// CreateUserSecret creates a secret and returns its id.
func (c *Client) CreateUserSecret(payload CreateSecretPayload) (*CreateSecretResponse, error) {
	var result CreateSecretResponse
	if err := c.do(http.MethodPost, userSecretsPath, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListUserSecrets fetches a page of secrets.
func (c *Client) ListUserSecrets(offset, limit int) (*ListSecretsResponse, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var result ListSecretsResponse
	if err := c.do(http.MethodGet, userSecretsPath+"?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUserSecret fetches a single secret by id.
func (c *Client) GetUserSecret(id string) (*models.UserSecret, error) {
	var result models.UserSecret
	if err := c.do(http.MethodGet, userSecretsPath+"/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateUserSecret applies a partial update to a secret.
func (c *Client) UpdateUserSecret(payload UpdateSecretPayload) (*UpdateSecretResponse, error) {
	var result UpdateSecretResponse
	if err := c.do(http.MethodPut, userSecretsPath, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteUserSecret removes a secret. Deleting an id that no longer
// exists is not an error.
func (c *Client) DeleteUserSecret(id string) (*DeleteSecretResponse, error) {
	var result DeleteSecretResponse
	if err := c.do(http.MethodDelete, userSecretsPath+"/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// do executes a JSON request against the server and decodes the response
// into out. Non-2xx responses become errors carrying the server message.
func (c *Client) do(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
