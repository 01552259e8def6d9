package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential attached to authenticated
// requests. The token is read at request time, not at client
// construction, so a sign-out immediately invalidates the client.
type TokenSource interface {
	Token() string
}

// Client is a thin HTTP client for the remote mail/auth API. It handles
// Bearer token authentication, JSON marshaling, and extraction of the
// server's `{message}` error payloads.
type Client struct {
	baseURL    string
	creds      TokenSource
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:5000/api). Authenticated endpoints read the
// bearer token from creds on every request.
func NewClient(baseURL string, creds TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SignIn exchanges email and password for a session credential via
// POST /auth/signin. A declined sign-in yields an AuthRejected error
// carrying the server's message.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/auth/signin", signInRequest{
		Email:    email,
		Password: password,
	}, false)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &AuthRejected{Message: extractMessage(body)}
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if creds.Token == "" || creds.UserID == "" {
		return nil, &DecodeError{Err: fmt.Errorf("signin response missing token or userId")}
	}
	return &creds, nil
}

// SignUp registers a new account via POST /auth/signup. Success does not
// establish a session; the user still has to sign in.
func (c *Client) SignUp(ctx context.Context, name, email, password string) error {
	body, status, err := c.do(ctx, http.MethodPost, "/auth/signup", signUpRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, false)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &AuthRejected{Message: extractMessage(body)}
	}
	return nil
}

// ListUsers fetches the recipient directory via GET /auth/getAllUserName.
// A non-array payload degrades to an empty directory rather than an
// error; the server is known to answer with an object on some failure
// paths.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/auth/getAllUserName", nil, true)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &RequestError{Status: status, Message: extractMessage(body)}
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return []User{}, nil
	}
	return users, nil
}

// ListMail fetches the messages of the caller's mailbox via GET /mail.
// The request carries no folder parameter; folder association is owned
// by the server.
func (c *Client) ListMail(ctx context.Context) ([]Mail, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/mail", nil, true)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &RequestError{Status: status, Message: extractMessage(body)}
	}

	var mails []Mail
	if err := json.Unmarshal(body, &mails); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return mails, nil
}

// SendMail submits a new message via POST /mail/send.
func (c *Client) SendMail(ctx context.Context, mail OutgoingMail) error {
	body, status, err := c.do(ctx, http.MethodPost, "/mail/send", mail, true)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &RequestError{Status: status, Message: extractMessage(body)}
	}
	return nil
}

// do builds the request, attaches auth when required, and returns the
// raw response body and status. Transport failures come back as
// NetworkError; authenticated calls without a token fail fast with
// AuthRequired before touching the network.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	authed bool,
) ([]byte, int, error) {
	var token string
	if authed {
		token = c.creds.Token()
		if token == "" {
			return nil, 0, &AuthRequired{}
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &NetworkError{Err: err}
	}

	return respBody, resp.StatusCode, nil
}

// extractMessage pulls the `{message}` field out of an error payload.
// Returns "" when the payload has no usable message.
func extractMessage(body []byte) string {
	var payload errorResponse
	if json.Unmarshal(body, &payload) == nil {
		return payload.Message
	}
	return ""
}
