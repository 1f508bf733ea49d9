// Package api is the CLI's HTTP client for the PitchPoa REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/pitchpoa/internal/common"
	"github.com/dmitrijs2005/pitchpoa/internal/netx"
	"github.com/dmitrijs2005/pitchpoa/internal/server/models"
)

// ErrNotLoggedIn is returned by protected calls made without a token.
var ErrNotLoggedIn = errors.New("not logged in")

// Error is a non-2xx reply. Message carries the server's {"message"} text,
// or the status text when the body had none.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) { c.token = token }
func (c *Client) Token() string         { return c.token }

// AuthResponse is the register/login reply.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Report is a downloaded PDF.
type Report struct {
	Filename string
	Data     []byte
}

func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, path, false, models.Credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Inventory(ctx context.Context) ([]*models.InventoryItem, error) {
	var out []*models.InventoryItem
	return out, c.do(ctx, http.MethodGet, "/api/inventory", true, nil, &out)
}

func (c *Client) LowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	var out []*models.InventoryItem
	return out, c.do(ctx, http.MethodGet, "/api/inventory/low-stock", true, nil, &out)
}

func (c *Client) CreateItem(ctx context.Context, in *models.InventoryItemInput) (*models.InventoryItem, error) {
	var out models.InventoryItem
	if err := c.do(ctx, http.MethodPost, "/api/inventory", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Suppliers(ctx context.Context) ([]*models.Supplier, error) {
	var out []*models.Supplier
	return out, c.do(ctx, http.MethodGet, "/api/suppliers", true, nil, &out)
}

func (c *Client) Sales(ctx context.Context) ([]*models.Sale, error) {
	var out []*models.Sale
	return out, c.do(ctx, http.MethodGet, "/api/sales", true, nil, &out)
}

func (c *Client) Optimize(ctx context.Context) (json.RawMessage, error) {
	return c.insight(ctx, http.MethodGet, "/api/inventory/optimization")
}

func (c *Client) Orders(ctx context.Context) (json.RawMessage, error) {
	return c.insight(ctx, http.MethodGet, "/api/inventory/order-automation")
}

func (c *Client) FinanceInsights(ctx context.Context) (json.RawMessage, error) {
	return c.insight(ctx, http.MethodGet, "/api/finance/insights")
}

func (c *Client) insight(ctx context.Context, method, path string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, method, path, true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzePitch uploads a recording as multipart form data.
func (c *Client) AnalyzePitch(ctx context.Context, title, filename string, audio io.Reader) (json.RawMessage, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if title != "" {
		if err := w.WriteField("title", title); err != nil {
			return nil, err
		}
	}
	part, err := w.CreateFormFile("audio", filepath.Base(filename))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/api/analyze-pitch", true, w.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// Report downloads the PDF report of the given kind.
func (c *Client) Report(ctx context.Context, kind string) (*Report, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/reports/"+kind, true, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	name := netx.AttachmentFilename(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = "pitchpoa-" + kind + ".pdf"
	}
	return &Report{Filename: name, Data: data}, nil
}

// do sends in as JSON and decodes the reply into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	resp, err := c.send(ctx, method, path, auth, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send performs the request and turns non-2xx replies into *Error.
// The caller closes the body of a successful response.
func (c *Client) send(ctx context.Context, method, path string, auth bool, contentType string, body io.Reader) (*http.Response, error) {
	if auth && c.token == "" {
		return nil, ErrNotLoggedIn
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}
	defer resp.Body.Close()

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	if payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}
	return nil, &Error{Status: resp.StatusCode, Message: payload.Message}
}
