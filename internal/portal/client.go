// Package portal implements the Portal Sehat two-step upload protocol:
// authenticate against the login endpoint, then push one rendered report
// through the multipart upload endpoint.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/puskesmas-sedau/robot-ssa/internal/config"
	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/httputil"
)

const (
	loginPath  = "/api/auth/local"
	uploadPath = "/api/upload-drive"

	// The portal rejects unknown clients, so requests identify as a
	// desktop browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Portal Sehat API client. It deliberately performs no
// retries: a failed request fails the whole item, and pacing between
// batch items is the only politeness mechanism.
type Client struct {
	baseURL     string
	idAplikasi  string
	idInstitusi string
	httpClient  HTTPDoer
}

// NewClient creates a new Portal Sehat client.
func NewClient(cfg config.PortalConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		idAplikasi:  cfg.IDAplikasi,
		idInstitusi: cfg.IDInstitusi,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
	}
}

// Login authenticates one operator and returns the bearer token.
// A non-200 response yields AuthError; a 200 response without a token
// yields ErrNoToken. Neither is retried.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	payload, err := json.Marshal(loginRequest{
		Identifier: creds.Username,
		Password:   creds.Password,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var login loginResponse
	if err := json.Unmarshal(body, &login); err != nil || login.JWT == "" {
		return "", ErrNoToken
	}
	return login.JWT, nil
}

// Upload pushes one rendered spreadsheet through the upload endpoint.
// The resolved report date is used as both the start and end date field.
// Success is exactly HTTP 200; any other status yields RejectionError
// carrying the raw response body.
func (c *Client) Upload(ctx context.Context, token, formID, date, fileName string, file []byte) (*Receipt, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"aplikasi":     c.idAplikasi,
		"formulir":     formID,
		"institusi":    c.idInstitusi,
		"TanggalAwal":  date,
		"TanggalAkhir": date,
		"Nama":         "",
		"NoHP":         "",
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", httputil.SpreadsheetMIME)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("writing file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing upload request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RejectionError{Status: resp.StatusCode, Body: string(body)}
	}

	// A 200 without a server identifier is still a success.
	serverID := "N/A"
	var parsed uploadResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Data.ID != nil {
		serverID = fmt.Sprint(parsed.Data.ID)
	}
	return &Receipt{ServerID: serverID}, nil
}
