// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package portal is the HTTP client for the support portal backend.
//
// One method per backend capability. Every authenticated method reads
// the client's phone from the session store and attaches it as the
// X-Client-Phone header — that header is the portal's entire
// authentication scheme. Login and Register are the only
// unauthenticated calls.
//
// Failures are normalized at this boundary into *Error values with an
// explicit kind (validation, transport, application); callers resolve
// display text with UserMessage and never inspect response bodies
// themselves. No retries and no client-side timeouts — transport
// defaults apply.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desk-foundation/desk/lib/session"
)

// PhoneHeader carries the session identity on authenticated requests.
const PhoneHeader = "X-Client-Phone"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the portal backend base URL (e.g., "http://localhost:7000").
	BaseURL string
	// Sessions supplies the client identity for authenticated calls. Required.
	Sessions *session.Store
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to the portal backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	sessions   *session.Store
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a portal client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("portal: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("portal: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if config.Sessions == nil {
		return nil, fmt.Errorf("portal: Sessions is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		sessions:   config.Sessions,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Login checks the phone against the backend. It does not persist the
// session — the caller decides whether a successful login becomes the
// stored identity.
func (c *Client) Login(ctx context.Context, phone string) (*LoginResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Введите телефон"}
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", "", LoginRequest{Phone: phone}, nil)
	if err != nil {
		return nil, err
	}

	var response LoginResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("portal: failed to parse login response: %w", err)
	}
	return &response, nil
}

// Register creates a new client account.
func (c *Client) Register(ctx context.Context, request RegisterRequest) (*RegisterResponse, error) {
	if strings.TrimSpace(request.Phone) == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Введите телефон"}
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", "", request, nil)
	if err != nil {
		return nil, err
	}

	var response RegisterResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("portal: failed to parse register response: %w", err)
	}
	return &response, nil
}

// Profile fetches the current client's profile by session identity.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/api/users/me", phone, nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("portal: failed to parse profile: %w", err)
	}
	return &user, nil
}

// CreateTicket submits a new support ticket. The category is assigned
// by the backend's classifier and only known from the response.
func (c *Client) CreateTicket(ctx context.Context, subject, text string) (*Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	text = strings.TrimSpace(text)
	if subject == "" || text == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Заполните тему и описание"}
	}

	request := CreateTicketRequest{
		ClientPhone: phone,
		Subject:     subject,
		Text:        text,
		Channel:     "web",
	}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/tickets", phone, request, nil)
	if err != nil {
		return nil, err
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("portal: failed to parse created ticket: %w", err)
	}
	return &ticket, nil
}

// Tickets lists the current client's tickets, newest first.
func (c *Client) Tickets(ctx context.Context) ([]Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	query := url.Values{"client_phone": {phone}}
	body, err := c.doRequest(ctx, http.MethodGet, "/api/tickets", phone, nil, query)
	if err != nil {
		return nil, err
	}

	var tickets []Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("portal: failed to parse ticket list: %w", err)
	}
	return tickets, nil
}

// Ticket fetches the full detail of one ticket, including its text,
// priority, and any stored AI response.
func (c *Client) Ticket(ctx context.Context, ticketID int64) (*Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodGet, ticketPath(ticketID, ""), phone, nil, nil)
	if err != nil {
		return nil, err
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("portal: failed to parse ticket: %w", err)
	}
	return &ticket, nil
}

// UpdateTicketStatus transitions a ticket to a new status.
func (c *Client) UpdateTicketStatus(ctx context.Context, ticketID int64, status string) (*Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(status) == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Укажите статус"}
	}

	request := map[string]string{"status": status}
	body, err := c.doRequest(ctx, http.MethodPatch, ticketPath(ticketID, "status"), phone, request, nil)
	if err != nil {
		return nil, err
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("portal: failed to parse updated ticket: %w", err)
	}
	return &ticket, nil
}

// Payments lists the payment history for the current client.
func (c *Client) Payments(ctx context.Context) ([]Payment, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	query := url.Values{"client_phone": {phone}}
	body, err := c.doRequest(ctx, http.MethodGet, "/api/payments", phone, nil, query)
	if err != nil {
		return nil, err
	}

	var payments []Payment
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("portal: failed to parse payment list: %w", err)
	}
	return payments, nil
}

// Chat sends a message to the AI assistant. The backend augments the
// prompt with the client's profile, recent tickets, and payments
// before asking the model; the reply is conversational text.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Введите сообщение"}
	}

	request := ChatRequest{Message: message, ClientPhone: phone}
	body, err := c.doRequest(ctx, http.MethodPost, "/api/ai/chat_with_db", phone, request, nil)
	if err != nil {
		return nil, err
	}

	var response ChatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("portal: failed to parse chat response: %w", err)
	}
	return &response, nil
}

// OperatorTickets lists tickets across all clients, optionally
// filtered by category and status. Empty filter values mean "all".
func (c *Client) OperatorTickets(ctx context.Context, category, status string) ([]Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if status != "" {
		query.Set("status", status)
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/api/operator/tickets", phone, nil, query)
	if err != nil {
		return nil, err
	}

	var tickets []Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("portal: failed to parse operator ticket list: %w", err)
	}
	return tickets, nil
}

// UpdateOperatorTicket applies a partial update (category, status,
// assignee, priority) to any ticket.
func (c *Client) UpdateOperatorTicket(ctx context.Context, ticketID int64, update TicketUpdate) (*Ticket, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPatch, operatorTicketPath(ticketID, ""), phone, update, nil)
	if err != nil {
		return nil, err
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("portal: failed to parse updated ticket: %w", err)
	}
	return &ticket, nil
}

// TicketHistory fetches the client-history document for a ticket: the
// client record plus their recent tickets and payments. The shape is
// backend-defined; it is returned raw and rendered as a structured
// dump.
func (c *Client) TicketHistory(ctx context.Context, ticketID int64) (json.RawMessage, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodGet, operatorTicketPath(ticketID, "history"), phone, nil, nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Comments lists a ticket's comment thread in creation order.
func (c *Client) Comments(ctx context.Context, ticketID int64) ([]Comment, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodGet, operatorTicketPath(ticketID, "comments"), phone, nil, nil)
	if err != nil {
		return nil, err
	}

	var comments []Comment
	if err := json.Unmarshal(body, &comments); err != nil {
		return nil, fmt.Errorf("portal: failed to parse comments: %w", err)
	}
	return comments, nil
}

// AddComment appends a comment to a ticket's thread.
func (c *Client) AddComment(ctx context.Context, ticketID int64, author, text string) (*Comment, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" || text == "" {
		return nil, &Error{Kind: KindValidation, Detail: "Заполните автора и текст комментария"}
	}

	request := Comment{Author: author, Text: text}
	body, err := c.doRequest(ctx, http.MethodPost, operatorTicketPath(ticketID, "comments"), phone, request, nil)
	if err != nil {
		return nil, err
	}

	var comment Comment
	if err := json.Unmarshal(body, &comment); err != nil {
		return nil, fmt.Errorf("portal: failed to parse created comment: %w", err)
	}
	return &comment, nil
}

// GenerateResponse asks the backend to generate an AI reply for the
// ticket and store it, without sending anything to the client.
func (c *Client) GenerateResponse(ctx context.Context, ticketID int64) (*GenerateResponseResult, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, ticketPath(ticketID, "response"), phone, nil, nil)
	if err != nil {
		return nil, err
	}

	var result GenerateResponseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("portal: failed to parse generated response: %w", err)
	}
	return &result, nil
}

// SendResponse asks the backend to generate an AI reply for the
// ticket and deliver it to the client. Returns the generated text and
// the backend's confirmation notice.
func (c *Client) SendResponse(ctx context.Context, ticketID int64) (*SendResponseResult, error) {
	phone, err := c.phone()
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, ticketPath(ticketID, "send_response"), phone, nil, nil)
	if err != nil {
		return nil, err
	}

	var result SendResponseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("portal: failed to parse send result: %w", err)
	}
	return &result, nil
}

// phone loads the session identity for an authenticated call. The
// wrapped session.ErrNoSession lets callers distinguish "not logged
// in" from real failures with errors.Is.
func (c *Client) phone() (string, error) {
	phone, err := c.sessions.Load()
	if err != nil {
		return "", fmt.Errorf("portal: %w", err)
	}
	return phone, nil
}

// doRequest performs an HTTP request and returns the response body.
// On 2xx, returns the body. On any other status, returns a *Error of
// kind application with the parsed error payload. Requests that never
// complete return a *Error of kind transport wrapping the cause.
// phone may be empty for the unauthenticated auth endpoints.
func (c *Client) doRequest(ctx context.Context, method, path, phone string, requestBody any, query url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("portal: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("portal: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if phone != "" {
		request.Header.Set(PhoneHeader, phone)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("reading %s %s response: %w", method, path, err)}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	portalErr := errorFromBody(response.StatusCode, responseBody)
	c.logger.Debug("portal request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
	)
	return nil, portalErr
}

func ticketPath(ticketID int64, suffix string) string {
	path := "/api/tickets/" + strconv.FormatInt(ticketID, 10)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}

func operatorTicketPath(ticketID int64, suffix string) string {
	path := "/api/operator/tickets/" + strconv.FormatInt(ticketID, 10)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}
