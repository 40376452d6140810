package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/log"
	"github.com/afawcett/flowextensions/pkg/store"
)

type (
	// Client is the HTTP binding to the hosted engine. It implements
	// Interpreter over the engine's session API and store.Store over
	// its configuration record API
	Client struct {
		httpClient *http.Client
		executor   Executor
		store      store.Store
		baseURL    string
	}

	// Option configures a Client
	Option func(*Client)

	remoteSession struct {
		client *Client
		flow   api.FlowName
		id     api.SessionID
	}
)

// DefaultTimeout bounds engine requests when no timeout is configured
const DefaultTimeout = 30 * time.Second

// Error messages
var (
	ErrCreateSession = errors.New("failed to create session")
	ErrStartSession  = errors.New("failed to start session")
	ErrGetVariable   = errors.New("failed to get variable")
	ErrQueryRecords  = errors.New("failed to query records")
)

var (
	_ Interpreter = (*Client)(nil)
	_ store.Store = (*Client)(nil)
	_ Session     = (*remoteSession)(nil)
)

// NewClient creates a client for the engine at baseURL. Unless options
// say otherwise, invocations execute through the standard executor and
// resolve record lookups against the engine itself
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.executor == nil {
		c.executor = NewExecutor(c)
	}
	if c.store == nil {
		c.store = c
	}
	return c
}

// WithTimeout sets the timeout for engine requests
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithExecutor replaces the Executor used by invocations created from
// this client
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		c.executor = exec
	}
}

// WithStore resolves record lookups against st instead of the engine
func WithStore(st store.Store) Option {
	return func(c *Client) {
		c.store = st
	}
}

// NewInvocation creates an Invocation bound to this client's executor
// and record store
func (c *Client) NewInvocation() *Invocation {
	return NewInvocation(c.executor, c.store)
}

// Store returns the record store lookups resolve against. That is the
// client itself unless WithStore replaced it
func (c *Client) Store() store.Store {
	return c.store
}

func (c *Client) url(format string, args ...any) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

// CreateSession asks the engine to create an interpreter session for
// the named flow
func (c *Client) CreateSession(
	ctx context.Context, name api.FlowName, inputs api.Args,
) (Session, error) {
	data, err := json.Marshal(&api.CreateSessionRequest{
		Flow:   name,
		Inputs: inputs,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.url("/engine/session"),
		bytes.NewBuffer(data),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to create session",
			log.Flow(name), log.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK &&
		resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: status %d, body: %s",
			ErrCreateSession, resp.StatusCode, string(body))
	}

	var res api.SessionCreatedResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%s: %s", ErrCreateSession, err)
	}
	return &remoteSession{client: c, flow: name, id: res.SessionID}, nil
}

// Query returns every configuration record with the given name from the
// engine's record API
func (c *Client) Query(
	ctx context.Context, name api.Name,
) ([]*api.ConfigRecord, error) {
	return c.fetchRecords(ctx, c.url("/engine/record/%s", name))
}

// List returns every configuration record the engine holds
func (c *Client) List(ctx context.Context) ([]*api.ConfigRecord, error) {
	return c.fetchRecords(ctx, c.url("/engine/record"))
}

func (c *Client) fetchRecords(
	ctx context.Context, url string,
) ([]*api.ConfigRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to query records", log.Error(err))
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: status %d, body: %s",
			ErrQueryRecords, resp.StatusCode, string(body))
	}

	var res api.RecordsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%s: %s", ErrQueryRecords, err)
	}
	return res.Records, nil
}

func (s *remoteSession) ID() api.SessionID {
	return s.id
}

// Start runs the flow to completion on the engine
func (s *remoteSession) Start(ctx context.Context) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		s.client.url("/engine/session/%s/start", s.id), nil,
	)
	if err != nil {
		return err
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to start session",
			log.Flow(s.flow), log.Session(s.id), log.Error(err))
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: status %d, body: %s",
			ErrStartSession, resp.StatusCode, string(body))
	}
	return nil
}

// Variable reads a session variable. A 204 response means the
// interpreter produced no value for that name
func (s *remoteSession) Variable(
	ctx context.Context, name api.Name,
) (any, bool, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		s.client.url("/engine/session/%s/variable/%s", s.id, name), nil,
	)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		slog.Error("Failed to get variable",
			log.Session(s.id), log.Output(name), log.Error(err))
		return nil, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var res api.VariableResponse
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return nil, false, fmt.Errorf("%s: %s", ErrGetVariable, err)
		}
		return res.Value, true, nil
	case http.StatusNoContent:
		return nil, false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("%s: status %d, body: %s",
			ErrGetVariable, resp.StatusCode, string(body))
	}
}
