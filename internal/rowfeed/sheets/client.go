// Package sheets implements the row feed contracts over the Google Sheets
// values API. The member feed and the annotation store live as two sheets
// of one spreadsheet; authentication is the OAuth2 refresh-token flow.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jimmeey/expiry-dashboard/internal/domain"
	"github.com/jimmeey/expiry-dashboard/internal/rowfeed"
)

const (
	defaultBaseURL  = "https://sheets.googleapis.com/v4/spreadsheets"
	defaultTokenURL = "https://oauth2.googleapis.com/token"

	// memberRange covers columns A..P of the member sheet; the optional
	// trailing columns (total sessions, phone, address) decode as empty
	// cells when absent.
	memberRange = "A:P"
	// annotationRange covers the fixed 9-column annotation layout.
	annotationRange = "A:I"
)

// Config carries the credentials and sheet coordinates for one spreadsheet.
type Config struct {
	ClientID        string
	ClientSecret    string
	RefreshToken    string
	SpreadsheetID   string
	MemberSheet     string
	AnnotationSheet string

	// TokenURL and BaseURL default to the public Google endpoints; tests
	// point them at an httptest server.
	TokenURL string
	BaseURL  string
}

// Client talks to the Sheets values API. It implements rowfeed.Store.
type Client struct {
	cfg   Config
	httpc *http.Client
	log   *slog.Logger
}

// NewClient constructs a Client. A nil httpc falls back to a client with a
// 30-second timeout; the transport owns timeouts, not the callers.
func NewClient(cfg Config, httpc *http.Client, log *slog.Logger) *Client {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{cfg: cfg, httpc: httpc, log: log}
}

var _ rowfeed.Store = (*Client)(nil)

// MemberRows fetches the member sheet, header row included.
func (c *Client) MemberRows(ctx context.Context) ([][]string, error) {
	rows, err := c.getValues(ctx, c.cfg.MemberSheet, memberRange)
	if err != nil {
		return nil, fmt.Errorf("sheets.Client.MemberRows: %w: %w", domain.ErrFetch, err)
	}
	return rows, nil
}

// AnnotationRows fetches the annotation sheet. When the sheet does not
// exist yet it is created with its header row, and a header-only result is
// returned; any other failure also degrades to header-only rather than
// erroring the whole data load.
func (c *Client) AnnotationRows(ctx context.Context) ([][]string, error) {
	rows, err := c.getValues(ctx, c.cfg.AnnotationSheet, annotationRange)
	if err != nil {
		c.log.WarnContext(ctx, "annotation sheet unavailable, treating as empty store", "error", err)
		if createErr := c.createAnnotationSheet(ctx); createErr != nil {
			c.log.WarnContext(ctx, "could not create annotation sheet", "error", createErr)
		}
		return [][]string{rowfeed.AnnotationHeader()}, nil
	}
	if len(rows) == 0 {
		return [][]string{rowfeed.AnnotationHeader()}, nil
	}
	return rows, nil
}

// WriteAnnotationRows overwrites the annotation sheet with rows via a RAW
// values update.
func (c *Client) WriteAnnotationRows(ctx context.Context, rows [][]string) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return fmt.Errorf("sheets.Client.WriteAnnotationRows: %w: %w", domain.ErrWrite, err)
	}

	body, err := json.Marshal(map[string]any{"values": rows})
	if err != nil {
		return fmt.Errorf("sheets.Client.WriteAnnotationRows: encode: %w", err)
	}

	u := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW",
		c.cfg.BaseURL, c.cfg.SpreadsheetID, c.rangeRef(c.cfg.AnnotationSheet, annotationRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets.Client.WriteAnnotationRows: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sheets.Client.WriteAnnotationRows: %w: %w", domain.ErrWrite, err)
	}
	defer drainClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheets.Client.WriteAnnotationRows: %w: status %d", domain.ErrWrite, resp.StatusCode)
	}
	return nil
}

// getValues performs a values GET for one sheet range and decodes the rows.
func (c *Client) getValues(ctx context.Context, sheet, cells string) ([][]string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s/values/%s", c.cfg.BaseURL, c.cfg.SpreadsheetID, c.rangeRef(sheet, cells))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer drainClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("values get %s: status %d", sheet, resp.StatusCode)
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("values get %s: decode: %w", sheet, err)
	}
	if payload.Values == nil {
		return [][]string{}, nil
	}
	return payload.Values, nil
}

// createAnnotationSheet adds the annotation sheet to the spreadsheet and
// seeds its header row. Called once, lazily, the first time the sheet is
// found missing.
func (c *Client) createAnnotationSheet(ctx context.Context) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]any{
		"requests": []map[string]any{
			{"addSheet": map[string]any{
				"properties": map[string]any{"title": c.cfg.AnnotationSheet},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("encode batchUpdate: %w", err)
	}

	u := fmt.Sprintf("%s/%s:batchUpdate", c.cfg.BaseURL, c.cfg.SpreadsheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("batchUpdate addSheet: status %d", resp.StatusCode)
	}

	return c.WriteAnnotationRows(ctx, [][]string{rowfeed.AnnotationHeader()})
}

// accessToken exchanges the long-lived refresh token for a short-lived
// access token. Tokens are not cached: the dashboard's request rate is a
// handful of calls per refresh cycle, well under the token endpoint quota.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {c.cfg.RefreshToken},
		"grant_type":    {"refresh_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh: %w", err)
	}
	defer drainClose(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh: status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("token refresh: decode: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token refresh: empty access_token")
	}
	return payload.AccessToken, nil
}

// rangeRef builds the "<sheet>!<cells>" range reference, URL-escaped so
// sheet titles with spaces survive the path segment.
func (c *Client) rangeRef(sheet, cells string) string {
	return url.PathEscape(sheet + "!" + cells)
}

// drainClose reads the remainder of a response body before closing so the
// underlying connection can be reused.
func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
