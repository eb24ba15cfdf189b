package portal

import (
	"errors"
	"fmt"
)

// ErrNoToken indicates a 200 login response without a jwt field.
var ErrNoToken = errors.New("no token received")

// AuthError is a non-200 response from the login endpoint.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed (status %d): %s", e.Status, e.Body)
}

// RejectionError is a non-200 response from the upload endpoint. Body
// carries the server's diagnostic text verbatim.
type RejectionError struct {
	Status int
	Body   string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("upload rejected (status %d): %s", e.Status, e.Body)
}

// Credentials are one operator's Portal Sehat login.
type Credentials struct {
	Username string
	Password string
}

// Receipt is the server's acknowledgement of an accepted upload.
type Receipt struct {
	// ServerID is the record identifier assigned by the portal,
	// or "N/A" when the response omits it.
	ServerID string
}

// Result is the tagged outcome of one submission attempt. Every internal
// failure mode is mapped into a Result at this package's boundary so the
// batch orchestrator never sees a fault it has to unwind from.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ServerID   string `json:"server_id,omitempty"`
	Title      string `json:"title,omitempty"`
	ReportDate string `json:"report_date,omitempty"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

type uploadResponse struct {
	Data struct {
		// The portal has returned both string and numeric identifiers.
		ID any `json:"id"`
	} `json:"data"`
}
