// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/desk-foundation/desk/lib/session"
)

// testClient creates a Client against the given handler with a session
// store in a temp directory. If phone is non-empty, it is saved so
// authenticated calls succeed.
func testClient(t *testing.T, handler http.Handler, phone string) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if phone != "" {
		if err := store.Save(phone); err != nil {
			t.Fatalf("saving test session: %v", err)
		}
	}

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Sessions: store})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, store
}

func TestNewClient(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))

	t.Run("valid", func(t *testing.T) {
		client, err := NewClient(ClientConfig{BaseURL: "http://localhost:7000", Sessions: store})
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		if client == nil {
			t.Fatal("NewClient returned nil")
		}
	})

	t.Run("empty base URL", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{Sessions: store}); err == nil {
			t.Fatal("expected error for empty BaseURL")
		}
	})

	t.Run("missing session store", func(t *testing.T) {
		if _, err := NewClient(ClientConfig{BaseURL: "http://localhost:7000"}); err == nil {
			t.Fatal("expected error for missing Sessions")
		}
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path != "/api/auth/login" {
				t.Errorf("unexpected path: %s", request.URL.Path)
			}
			if got := request.Header.Get(PhoneHeader); got != "" {
				t.Errorf("login must be unauthenticated, got %s: %q", PhoneHeader, got)
			}
			var body LoginRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if body.Phone != "5551234" {
				t.Errorf("phone = %q, want trimmed %q", body.Phone, "5551234")
			}
			json.NewEncoder(writer).Encode(LoginResponse{Message: "Успешный вход"})
		}), "")

		response, err := client.Login(context.Background(), "  5551234 ")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if response.Message != "Успешный вход" {
			t.Errorf("message = %q", response.Message)
		}
	})

	t.Run("empty phone issues no request", func(t *testing.T) {
		called := false
		client, _ := testClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}), "")

		_, err := client.Login(context.Background(), "   ")
		var portalErr *Error
		if !errors.As(err, &portalErr) || portalErr.Kind != KindValidation {
			t.Fatalf("err = %v, want validation Error", err)
		}
		if called {
			t.Error("empty phone must not reach the network")
		}
	})

	t.Run("unknown phone surfaces detail", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			json.NewEncoder(writer).Encode(map[string]string{"detail": "Клиент с таким номером не найден"})
		}), "")

		_, err := client.Login(context.Background(), "0000000")
		var portalErr *Error
		if !errors.As(err, &portalErr) {
			t.Fatalf("err = %v, want *Error", err)
		}
		if portalErr.Kind != KindApplication || portalErr.StatusCode != http.StatusNotFound {
			t.Errorf("kind=%s status=%d", portalErr.Kind, portalErr.StatusCode)
		}
		if got := portalErr.UserMessage("Ошибка входа"); got != "Клиент с таким номером не найден" {
			t.Errorf("UserMessage = %q", got)
		}
	})
}

func TestAuthenticatedHeader(t *testing.T) {
	var gotHeader string
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotHeader = request.Header.Get(PhoneHeader)
		json.NewEncoder(writer).Encode(User{FullName: "Иван Иванов", Phone: "5551234"})
	}), "5551234")

	if _, err := client.Profile(context.Background()); err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	if gotHeader != "5551234" {
		t.Errorf("%s = %q, want %q", PhoneHeader, gotHeader, "5551234")
	}
}

func TestAuthenticatedWithoutSession(t *testing.T) {
	called := false
	client, _ := testClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}), "")

	operations := map[string]func() error{
		"Profile":  func() error { _, err := client.Profile(context.Background()); return err },
		"Tickets":  func() error { _, err := client.Tickets(context.Background()); return err },
		"Payments": func() error { _, err := client.Payments(context.Background()); return err },
		"Chat":     func() error { _, err := client.Chat(context.Background(), "hello"); return err },
		"CreateTicket": func() error {
			_, err := client.CreateTicket(context.Background(), "Billing", "Overcharged")
			return err
		},
		"OperatorTickets": func() error { _, err := client.OperatorTickets(context.Background(), "", ""); return err },
	}

	for name, operation := range operations {
		t.Run(name, func(t *testing.T) {
			err := operation()
			if !errors.Is(err, session.ErrNoSession) {
				t.Errorf("err = %v, want wrapped ErrNoSession", err)
			}
			if called {
				t.Error("request issued without a session")
			}
		})
	}
}

func TestCreateTicket(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body CreateTicketRequest
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if body.ClientPhone != "5551234" || body.Subject != "Billing" || body.Text != "Overcharged" {
				t.Errorf("unexpected body: %+v", body)
			}
			writer.WriteHeader(http.StatusCreated)
			json.NewEncoder(writer).Encode(Ticket{ID: 42, Category: "billing", Status: "new"})
		}), "5551234")

		ticket, err := client.CreateTicket(context.Background(), "Billing", "Overcharged")
		if err != nil {
			t.Fatalf("CreateTicket failed: %v", err)
		}
		if ticket.ID != 42 || ticket.Category != "billing" {
			t.Errorf("ticket = %+v", ticket)
		}
	})

	t.Run("empty fields issue no request", func(t *testing.T) {
		called := false
		client, _ := testClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}), "5551234")

		for _, input := range [][2]string{{"", "text"}, {"subject", ""}, {"  ", "  "}} {
			_, err := client.CreateTicket(context.Background(), input[0], input[1])
			var portalErr *Error
			if !errors.As(err, &portalErr) || portalErr.Kind != KindValidation {
				t.Errorf("CreateTicket(%q, %q) = %v, want validation Error", input[0], input[1], err)
			}
		}
		if called {
			t.Error("validation failure must not reach the network")
		}
	})
}

func TestTicketsQuery(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.URL.Query().Get("client_phone"); got != "5551234" {
			t.Errorf("client_phone query = %q", got)
		}
		json.NewEncoder(writer).Encode([]Ticket{
			{ID: 1, Subject: "Интернет", Status: "new", CreatedAt: "2026-03-01T10:00:00"},
		})
	}), "5551234")

	tickets, err := client.Tickets(context.Background())
	if err != nil {
		t.Fatalf("Tickets failed: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != 1 {
		t.Errorf("tickets = %+v", tickets)
	}
}

func TestOperatorTicketsFilters(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotQuery = request.URL.RawQuery
		json.NewEncoder(writer).Encode([]Ticket{})
	}), "5551234")

	if _, err := client.OperatorTickets(context.Background(), "billing", "new"); err != nil {
		t.Fatalf("OperatorTickets failed: %v", err)
	}
	if gotQuery != "category=billing&status=new" {
		t.Errorf("query = %q", gotQuery)
	}

	// Empty filters are omitted entirely, not sent as empty values.
	if _, err := client.OperatorTickets(context.Background(), "", ""); err != nil {
		t.Fatalf("OperatorTickets failed: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("unfiltered query = %q, want empty", gotQuery)
	}
}

func TestCommentRoundTrip(t *testing.T) {
	var posted Comment
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.Method == http.MethodPost && request.URL.Path == "/api/operator/tickets/7/comments":
			if err := json.NewDecoder(request.Body).Decode(&posted); err != nil {
				t.Fatalf("decoding comment: %v", err)
			}
			writer.WriteHeader(http.StatusCreated)
			json.NewEncoder(writer).Encode(Comment{ID: 3, Author: posted.Author, Text: posted.Text})
		case request.Method == http.MethodGet && request.URL.Path == "/api/operator/tickets/7/comments":
			json.NewEncoder(writer).Encode([]Comment{{ID: 3, Author: posted.Author, Text: posted.Text}})
		default:
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
			writer.WriteHeader(http.StatusNotFound)
		}
	}), "5551234")

	created, err := client.AddComment(context.Background(), 7, "operator", "Проверим линию")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("created = %+v", created)
	}

	comments, err := client.Comments(context.Background(), 7)
	if err != nil {
		t.Fatalf("Comments failed: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "Проверим линию" {
		t.Errorf("comments = %+v", comments)
	}
}

func TestSendResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/tickets/42/send_response" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		json.NewEncoder(writer).Encode(SendResponseResult{
			AIResponse: "Мы проверили вашу заявку.",
			Message:    "Ответ сгенерирован и отправляется клиенту",
		})
	}), "5551234")

	result, err := client.SendResponse(context.Background(), 42)
	if err != nil {
		t.Fatalf("SendResponse failed: %v", err)
	}
	if result.AIResponse == "" || result.Message == "" {
		t.Errorf("result = %+v", result)
	}
}

func TestTransportErrorKind(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := store.Save("5551234"); err != nil {
		t.Fatal(err)
	}
	// A closed server: requests fail at the transport layer.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, Sessions: store})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Profile(context.Background())
	var portalErr *Error
	if !errors.As(err, &portalErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if portalErr.Kind != KindTransport {
		t.Errorf("kind = %s, want transport", portalErr.Kind)
	}
	if portalErr.Unwrap() == nil {
		t.Error("transport error should carry its cause")
	}
}

func TestTicketHistoryRaw(t *testing.T) {
	document := `{"client":{"full_name":"Иван"},"payments":[],"tickets":[]}`
	client, _ := testClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/operator/tickets/9/history" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		writer.Write([]byte(document))
	}), "5551234")

	raw, err := client.TicketHistory(context.Background(), 9)
	if err != nil {
		t.Fatalf("TicketHistory failed: %v", err)
	}
	if string(raw) != document {
		t.Errorf("history = %s", raw)
	}
}
