// Package flatfile is a small client for the Flatfile onboarding API.
package flatfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/FlatFilers/HCMShow-sub000/internal/records"
)

// ErrMissingCredentials is returned by every call when no API key is configured.
var ErrMissingCredentials = errors.New("flatfile: FLATFILE_API_KEY is not configured")

const recordsPageSize = 1000

// APIError is a non-2xx response from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flatfile: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Sheet is a named table inside a workbook.
type Sheet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Workbook groups sheets inside a space.
type Workbook struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sheets []Sheet `json:"sheets"`
}

// Space is a tenant workspace in Flatfile.
type Space struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	GuestLink string `json:"guestLink,omitempty"`
}

// CreateSpaceParams is the input to CreateSpace.
type CreateSpaceParams struct {
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Guest is a user invited into a space.
type Guest struct {
	Email string
	Name  string
}

// Client talks to the Flatfile API. Build it once and share it; it is safe for concurrent use.
type Client struct {
	baseURL       string
	apiKey        string
	environmentID string
	http          *http.Client
	logger        *zap.Logger
}

// NewClient creates an API client. A blank apiKey is accepted; calls then fail with ErrMissingCredentials.
func NewClient(baseURL, apiKey, environmentID string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		environmentID: environmentID,
		http:          &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

// CreateSpace creates a space in the configured environment.
func (c *Client) CreateSpace(ctx context.Context, p CreateSpaceParams) (*Space, error) {
	body := struct {
		CreateSpaceParams
		EnvironmentID string `json:"environmentId"`
		AutoConfigure bool   `json:"autoConfigure"`
	}{CreateSpaceParams: p, EnvironmentID: c.environmentID, AutoConfigure: true}

	var out struct {
		Data Space `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/spaces", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// InviteGuest adds a guest to spaceID so they can open it from the demo UI.
func (c *Client) InviteGuest(ctx context.Context, spaceID string, g Guest) error {
	type spaceRef struct {
		ID string `json:"id"`
	}
	body := []map[string]any{{
		"environmentId": c.environmentID,
		"email":         g.Email,
		"name":          g.Name,
		"spaces":        []spaceRef{{ID: spaceID}},
	}}
	return c.do(ctx, http.MethodPost, "/guests", nil, body, nil)
}

// ListWorkbooks returns the workbooks of a space with their sheets.
func (c *Client) ListWorkbooks(ctx context.Context, spaceID string) ([]Workbook, error) {
	var out struct {
		Data []Workbook `json:"data"`
	}
	q := url.Values{"spaceId": {spaceID}}
	if err := c.do(ctx, http.MethodGet, "/workbooks", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetRecords returns every record of a sheet, following pages until a short page.
func (c *Client) GetRecords(ctx context.Context, sheetID string) ([]records.Record, error) {
	var all []records.Record
	for page := 1; ; page++ {
		var out struct {
			Data struct {
				Records []records.Record `json:"records"`
			} `json:"data"`
		}
		q := url.Values{
			"pageSize":   {strconv.Itoa(recordsPageSize)},
			"pageNumber": {strconv.Itoa(page)},
		}
		if err := c.do(ctx, http.MethodGet, "/sheets/"+url.PathEscape(sheetID)+"/records", q, nil, &out); err != nil {
			return nil, err
		}
		all = append(all, out.Data.Records...)
		if len(out.Data.Records) < recordsPageSize {
			return all, nil
		}
	}
}

// RecordsBySheetName finds the sheet called name in any workbook of spaceID and returns its records.
// A space without such a sheet yields no records and no error.
func (c *Client) RecordsBySheetName(ctx context.Context, spaceID, name string) ([]records.Record, error) {
	workbooks, err := c.ListWorkbooks(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	for _, wb := range workbooks {
		for _, sh := range wb.Sheets {
			if strings.EqualFold(sh.Name, name) {
				return c.GetRecords(ctx, sh.ID)
			}
		}
	}
	c.logger.Info("sheet not found in space", zap.String("space_id", spaceID), zap.String("sheet", name))
	return nil, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.apiKey == "" {
		return ErrMissingCredentials
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("flatfile request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("flatfile %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
		c.logger.Error("flatfile api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
		)
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
