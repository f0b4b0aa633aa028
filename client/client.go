// Package client is the typed API client used by the mobile and CLI frontends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/citywatch/backend/client/gate"
	"github.com/citywatch/backend/client/session"
)

// defaultTimeout bounds every API call so a dead server surfaces as a
// network error instead of a hang.
const defaultTimeout = 15 * time.Second

// Client calls the API and keeps the session store in sync with the
// login and logout operations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
}

// New creates a client for the API at baseURL, persisting sessions in store
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		store:      store,
	}
}

// CitizenSignup represents the citizen registration fields.
// ConfirmPassword is checked locally and never sent over the wire.
type CitizenSignup struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// PoliceSignup represents the police registration fields.
// ConfirmPassword is checked locally and never sent over the wire.
type PoliceSignup struct {
	FullName        string `json:"fullName"`
	BadgeNumber     string `json:"badgeNumber"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Department      string `json:"department"`
	Rank            string `json:"rank"`
}

// TipSubmission represents an anonymous tip
type TipSubmission struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Media       string `json:"media,omitempty"`
}

// TipSummary is one row of the authenticated tip listing
type TipSummary struct {
	ID       int    `json:"id"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// Profile is the authenticated account's own record
type Profile struct {
	ID          int    `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	BadgeNumber string `json:"badgeNumber,omitempty"`
	Department  string `json:"department,omitempty"`
	Rank        string `json:"rank,omitempty"`
}

// envelope is the uniform response wrapper used by every endpoint
type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Token    string          `json:"token"`
	IsPolice bool            `json:"isPolice"`
	Tips     []TipSummary    `json:"tips"`
	User     json.RawMessage `json:"user"`
}

// SignupCitizen registers a citizen account. Phone numbers are normalized
// before sending, matching what the signup screen does.
func (c *Client) SignupCitizen(ctx context.Context, req CitizenSignup) error {
	if strings.TrimSpace(req.FullName) == "" {
		return &Error{Kind: KindValidation, Message: "full name is required"}
	}
	if !ValidEmail(req.Email) {
		return &Error{Kind: KindValidation, Message: "invalid email format"}
	}
	if !ValidPhone(req.PhoneNumber) {
		return &Error{Kind: KindValidation, Message: "phone number must be 10 digits"}
	}
	if req.Password == "" || req.Password != req.ConfirmPassword {
		return &Error{Kind: KindValidation, Message: "passwords do not match"}
	}
	req.PhoneNumber = NormalizePhone(req.PhoneNumber)

	_, err := c.do(ctx, http.MethodPost, "/auth/citizen/signup", req, false)
	return err
}

// SignupPolice registers a police account
func (c *Client) SignupPolice(ctx context.Context, req PoliceSignup) error {
	if strings.TrimSpace(req.FullName) == "" {
		return &Error{Kind: KindValidation, Message: "full name is required"}
	}
	if strings.TrimSpace(req.BadgeNumber) == "" {
		return &Error{Kind: KindValidation, Message: "badge number is required"}
	}
	if !ValidEmail(req.Email) {
		return &Error{Kind: KindValidation, Message: "invalid email format"}
	}
	if req.Password == "" || req.Password != req.ConfirmPassword {
		return &Error{Kind: KindValidation, Message: "passwords do not match"}
	}

	_, err := c.do(ctx, http.MethodPost, "/auth/police/signup", req, false)
	return err
}

// LoginCitizen authenticates a citizen and stores the session
func (c *Client) LoginCitizen(ctx context.Context, email, password string) error {
	return c.login(ctx, "/auth/citizen/login", gate.RoleCitizen, email, password)
}

// LoginPolice authenticates a police officer and stores the session
func (c *Client) LoginPolice(ctx context.Context, email, password string) error {
	return c.login(ctx, "/auth/police/login", gate.RolePolice, email, password)
}

func (c *Client) login(ctx context.Context, path, role, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, path, body, false)
	if err != nil {
		return err
	}
	if env.Token == "" {
		return &Error{Kind: KindServer, Message: "login response carried no token"}
	}

	creds := session.Credentials{Token: env.Token, Role: role}
	if err := c.store.Save(creds); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Logout discards the stored session. The token simply ages out server-side.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// SubmitTip sends an anonymous tip. No session is attached even if one exists.
// Everything except media is mandatory, matching the server rules.
func (c *Client) SubmitTip(ctx context.Context, tip TipSubmission) error {
	required := []struct{ field, value string }{
		{"name", tip.Name},
		{"phone", tip.Phone},
		{"time", tip.Time},
		{"location", tip.Location},
		{"title", tip.Title},
		{"description", tip.Description},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &Error{Kind: KindValidation, Message: f.field + " is required"}
		}
	}
	if !ValidPhone(tip.Phone) {
		return &Error{Kind: KindValidation, Message: "phone number must be 10 digits"}
	}
	tip.Phone = NormalizePhone(tip.Phone)

	_, err := c.do(ctx, http.MethodPost, "/tips/submit", tip, false)
	return err
}

// SubmitSOS sends an authenticated emergency alert with the device position
func (c *Client) SubmitSOS(ctx context.Context, when string, latitude, longitude float64) error {
	body := map[string]any{
		"time":      when,
		"latitude":  latitude,
		"longitude": longitude,
	}
	_, err := c.do(ctx, http.MethodPost, "/tips/sos", body, true)
	return err
}

// ListTips retrieves the authenticated account's submitted tips, newest first
func (c *Client) ListTips(ctx context.Context) ([]TipSummary, error) {
	env, err := c.do(ctx, http.MethodGet, "/tips", nil, true)
	if err != nil {
		return nil, err
	}
	return env.Tips, nil
}

// GetProfile retrieves the authenticated account's own record
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/profile", nil, true)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(env.User, &profile); err != nil {
		return nil, &Error{Kind: KindServer, Message: "malformed profile response"}
	}
	return &profile, nil
}

// do performs a request and maps failures onto the error taxonomy
func (c *Client) do(ctx context.Context, method, path string, body any, authed bool) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		creds, ok, err := c.store.Load()
		if err != nil || !ok {
			return nil, &Error{Kind: KindAuthRequired, Message: "please login to continue"}
		}
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "could not reach server"}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &Error{Kind: KindServer, Message: "malformed server response", Status: resp.StatusCode}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &env, nil
	}

	return nil, &Error{
		Kind:    classify(resp.StatusCode, env.Message),
		Message: env.Message,
		Status:  resp.StatusCode,
	}
}

// classify maps a failed response onto an error kind. Duplicates share
// the 400 status with validation failures, so the message disambiguates.
func classify(status int, message string) Kind {
	switch status {
	case http.StatusBadRequest:
		if strings.Contains(message, "already registered") {
			return KindDuplicateAccount
		}
		return KindValidation
	case http.StatusUnauthorized:
		if strings.Contains(message, "credentials") {
			return KindInvalidCredentials
		}
		return KindAuthRequired
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindServer
	}
}
