// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portal

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Placeholder is shown wherever an optional field is absent.
const Placeholder = "-"

// User is the client profile as served by GET /api/users/me. Read-only
// from the client's perspective; re-fetched on every dashboard entry.
type User struct {
	ID        int64       `json:"id"`
	FullName  string      `json:"full_name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email,omitempty"`
	Tariff    string      `json:"tariff,omitempty"`
	Services  Services    `json:"services"`
	Balance   json.Number `json:"balance"`
	Debt      json.Number `json:"debt"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// Services is the list of enabled features on a client's plan. The
// backend serves it in two shapes depending on the data source: a JSON
// array of feature names, or an object whose truthy values mark
// enabled features. Both normalize to a name list at decode time; the
// object form is sorted by key so rendering is deterministic.
type Services struct {
	names []string
}

// ServicesFromNames builds a Services value from an explicit name
// list. Used by tests and by callers constructing profiles directly.
func ServicesFromNames(names ...string) Services {
	return Services{names: names}
}

// Names returns the enabled feature names. The returned slice is
// shared; callers must not mutate it.
func (s Services) Names() []string { return s.names }

// String renders the enabled features as a comma-joined list, or the
// placeholder when none are enabled.
func (s Services) String() string {
	if len(s.names) == 0 {
		return Placeholder
	}
	return strings.Join(s.names, ", ")
}

// MarshalJSON always emits the array form.
func (s Services) MarshalJSON() ([]byte, error) {
	if s.names == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.names)
}

// UnmarshalJSON accepts the array form, the object form, and null.
func (s *Services) UnmarshalJSON(data []byte) error {
	s.names = nil

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		s.names = names
		return nil
	}

	var flags map[string]any
	if err := json.Unmarshal(data, &flags); err != nil {
		return fmt.Errorf("portal: services is neither array nor object: %s", trimmed)
	}
	for name, value := range flags {
		if truthy(value) {
			s.names = append(s.names, name)
		}
	}
	sort.Strings(s.names)
	return nil
}

// truthy mirrors JavaScript truthiness for decoded JSON values: false,
// 0, "", and null are falsy; everything else is truthy.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		// Nested arrays and objects count as enabled.
		return true
	}
}

// Ticket is a support request. Created by the client with subject and
// text; category, status, priority, and assignee are server-assigned.
type Ticket struct {
	ID          int64  `json:"id"`
	ClientPhone string `json:"client_phone,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Text        string `json:"text,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	Channel     string `json:"channel,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	AIResponse  string `json:"ai_response,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Payment is one entry in the client's payment history. Read-only.
type Payment struct {
	ID      int64       `json:"id"`
	Date    string      `json:"date"`
	Amount  json.Number `json:"amount"`
	Service string      `json:"service,omitempty"`
	Status  string      `json:"status"`
}

// Comment is an operator or client note attached to a ticket.
// Appended, never edited or deleted.
type Comment struct {
	ID        int64  `json:"id,omitempty"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Phone string `json:"phone"`
}

// LoginResponse is the success body of POST /api/auth/login.
type LoginResponse struct {
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// RegisterResponse is the created client record.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// CreateTicketRequest is the body of POST /api/tickets. ClientPhone
// duplicates the identity header because the backend reads it from
// the body on this endpoint.
type CreateTicketRequest struct {
	ClientPhone string `json:"client_phone"`
	Subject     string `json:"subject,omitempty"`
	Text        string `json:"text"`
	Channel     string `json:"channel,omitempty"`
}

// ChatRequest is the body of POST /api/ai/chat_with_db.
type ChatRequest struct {
	Message     string `json:"message"`
	ClientPhone string `json:"client_phone"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	AIMessage string `json:"ai_message"`
}

// GenerateResponseResult is the body of POST /api/tickets/{id}/response.
type GenerateResponseResult struct {
	AIResponse string `json:"ai_response"`
}

// SendResponseResult is the body of POST /api/tickets/{id}/send_response:
// the generated text plus the backend's delivery confirmation.
type SendResponseResult struct {
	AIResponse string `json:"ai_response"`
	Message    string `json:"message"`
}

// TicketUpdate is a partial update for PATCH /api/operator/tickets/{id}.
// Nil fields are omitted and left unchanged by the backend.
type TicketUpdate struct {
	Category   *string `json:"category,omitempty"`
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
	Priority   *string `json:"priority,omitempty"`
}

// timestampLayouts are the wire formats the backend emits for
// datetime fields. FastAPI serializes naive datetimes without a zone
// suffix, so RFC 3339 alone does not cover them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp tries the known wire formats in order.
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a wire timestamp as a localized date-time
// for table display. Unparseable values pass through verbatim so a
// backend format change degrades to raw text instead of hiding data.
func FormatTimestamp(value string) string {
	if value == "" {
		return Placeholder
	}
	parsed, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return parsed.Format("02.01.2006 15:04")
}

// FormatDate renders a wire timestamp as a date-only string, used for
// payment history rows.
func FormatDate(value string) string {
	if value == "" {
		return Placeholder
	}
	parsed, ok := parseTimestamp(value)
	if !ok {
		return value
	}
	return parsed.Format("02.01.2006")
}

// OrPlaceholder substitutes the placeholder for empty optional fields
// at render time.
func OrPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
