// Package client is the portal's client core: a typed REST client, the
// session store, the draft/confirm payment builder, the admin approval queue
// and the ledger view.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payments-portal/internal/apperr"
)

const DefaultTimeout = 15 * time.Second

// API talks to the portal server on behalf of a Session.
type API struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     *logrus.Logger
}

type Option func(*API)

// WithHTTPClient replaces the default client, including its timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) { a.httpClient = c }
}

func WithLogger(l *logrus.Logger) Option {
	return func(a *API) { a.logger = l }
}

func NewAPI(baseURL string, timeout time.Duration, session *Session, opts ...Option) *API {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	a := &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) Session() *Session {
	return a.session
}

func (a *API) Register(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := a.do(ctx, http.MethodPost, "/auth/register", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the new session.
func (a *API) Login(ctx context.Context, email, password string) (*User, error) {
	var resp loginResponse
	if err := a.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	err := a.session.Login(SessionState{
		Token:     resp.Token,
		Role:      resp.User.Role,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		ExpiresAt: resp.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("API.Login: %w", err)
	}
	return &resp.User, nil
}

// Logout revokes the token server side. The local session is cleared even
// when the server call fails.
func (a *API) Logout(ctx context.Context) error {
	err := a.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if clearErr := a.session.Teardown(); clearErr != nil && err == nil {
		err = clearErr
	}
	if errors.Is(err, apperr.ErrUnauthorized) {
		return nil
	}
	return err
}

func (a *API) AddAdmin(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := a.do(ctx, http.MethodPost, "/admin/add-admin", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *API) submitPayment(ctx context.Context, req paymentRequest) (*Transaction, error) {
	var tx Transaction
	if err := a.do(ctx, http.MethodPost, "/payments", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (a *API) Balance(ctx context.Context) (*Statement, error) {
	var statement Statement
	if err := a.do(ctx, http.MethodGet, "/users/me/balance", nil, &statement); err != nil {
		return nil, err
	}
	return &statement, nil
}

func (a *API) History(ctx context.Context) ([]Transaction, error) {
	var body transactionsBody
	if err := a.do(ctx, http.MethodGet, "/payments/history", nil, &body); err != nil {
		return nil, err
	}
	return body.Transactions, nil
}

func (a *API) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := a.do(ctx, http.MethodGet, "/users/me/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (a *API) Pending(ctx context.Context) ([]Transaction, error) {
	var body transactionsBody
	if err := a.do(ctx, http.MethodGet, "/admin/payments/pending", nil, &body); err != nil {
		return nil, err
	}
	return body.Transactions, nil
}

func (a *API) Approve(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return a.decide(ctx, id, "approve")
}

func (a *API) Reject(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return a.decide(ctx, id, "reject")
}

func (a *API) decide(ctx context.Context, id uuid.UUID, verb string) (*Transaction, error) {
	var tx Transaction
	if err := a.do(ctx, http.MethodPost, "/admin/payments/"+id.String()+"/"+verb, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// do sends one request and decodes a 2xx body into out. Failures are
// wrapped apperr sentinels; a 401 also tears down the session.
func (a *API) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return transportError(method, path, err)
	}
	defer resp.Body.Close()

	a.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("API.do")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		sentinel := apperr.FromStatus(resp.StatusCode)
		if errors.Is(sentinel, apperr.ErrUnauthorized) {
			if clearErr := a.session.Teardown(); clearErr != nil {
				a.logger.WithError(clearErr).Warn("API.do.session teardown")
			}
		}
		return fmt.Errorf("%s: %w", problemDetail(raw, resp.StatusCode), sentinel)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, apperr.ErrServer)
	}
	return nil
}

func transportError(method, path string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s %s: %w", method, path, apperr.ErrTimeout)
	}
	return fmt.Errorf("%s %s: %v: %w", method, path, err, apperr.ErrNetwork)
}

func problemDetail(raw []byte, status int) string {
	var problem errorBody
	if err := json.Unmarshal(raw, &problem); err == nil {
		if problem.Detail != "" {
			return problem.Detail
		}
		if problem.Title != "" {
			return problem.Title
		}
	}
	return http.StatusText(status)
}
