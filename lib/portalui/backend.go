// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desk-foundation/desk/lib/portal"
)

// Backend abstracts portal data access for the console. [portal.Client]
// implements it against the HTTP API; tests substitute an in-memory
// fake. The console code is identical in both cases.
type Backend interface {
	// Login authenticates a phone number. Unauthenticated: this is
	// the one call that works without a stored session.
	Login(ctx context.Context, phone string) (*portal.LoginResponse, error)

	// Profile returns the logged-in client's account.
	Profile(ctx context.Context) (*portal.User, error)

	// Tickets returns the logged-in client's tickets, newest first.
	Tickets(ctx context.Context) ([]portal.Ticket, error)

	// CreateTicket files a new ticket. The backend assigns the
	// category and may attach an immediate AI response.
	CreateTicket(ctx context.Context, subject, text string) (*portal.Ticket, error)

	// Payments returns the logged-in client's payment history.
	Payments(ctx context.Context) ([]portal.Payment, error)

	// Chat sends one message to the AI assistant and returns its reply.
	Chat(ctx context.Context, message string) (*portal.ChatResponse, error)

	// OperatorTickets returns tickets across all clients, optionally
	// filtered by category and status. Empty filters match everything.
	OperatorTickets(ctx context.Context, category, status string) ([]portal.Ticket, error)

	// TicketHistory returns the ticket client's account summary as a
	// raw JSON document. Its shape is backend-defined.
	TicketHistory(ctx context.Context, ticketID int64) (json.RawMessage, error)

	// Comments returns a ticket's internal operator comments.
	Comments(ctx context.Context, ticketID int64) ([]portal.Comment, error)

	// AddComment appends an internal comment to a ticket.
	AddComment(ctx context.Context, ticketID int64, author, text string) (*portal.Comment, error)

	// SendResponse generates an AI response for a ticket and delivers
	// it to the client.
	SendResponse(ctx context.Context, ticketID int64) (*portal.SendResponseResult, error)
}

var _ Backend = (*portal.Client)(nil)

// Messages delivered by backend tea.Cmd calls. Each carries the err
// from the call; the Update loop routes errors to the status bar
// uniformly, so result handlers only deal with the success path.

// loginResultMsg is sent when a login attempt completes.
type loginResultMsg struct {
	phone    string
	response *portal.LoginResponse
	err      error
}

// profileMsg is sent when a profile fetch completes.
type profileMsg struct {
	user *portal.User
	err  error
}

// ticketsMsg is sent when the client ticket list fetch completes.
type ticketsMsg struct {
	tickets []portal.Ticket
	err     error
}

// ticketCreatedMsg is sent when a ticket creation completes.
type ticketCreatedMsg struct {
	ticket *portal.Ticket
	err    error
}

// paymentsMsg is sent when the payment history fetch completes.
type paymentsMsg struct {
	payments []portal.Payment
	err      error
}

// chatReplyMsg is sent when the AI assistant answers. prompt echoes
// the message that was sent, so stale replies from an abandoned
// exchange can be matched against the transcript.
type chatReplyMsg struct {
	prompt string
	reply  *portal.ChatResponse
	err    error
}

// queueMsg is sent when the operator queue fetch completes.
type queueMsg struct {
	tickets []portal.Ticket
	err     error
}

// operatorDetailMsg is sent when an operator detail load (history
// then comments) completes. It carries the ticket ID so results for
// a ticket the operator has already navigated away from are dropped.
type operatorDetailMsg struct {
	ticketID int64
	history  json.RawMessage
	comments []portal.Comment
	err      error
}

// commentAddedMsg is sent when a comment post completes.
type commentAddedMsg struct {
	ticketID int64
	err      error
}

// responseSentMsg is sent when an AI response delivery completes.
type responseSentMsg struct {
	ticketID int64
	result   *portal.SendResponseResult
	err      error
}

// The fetch commands below run one backend call each and deliver the
// result as a message. They use a background context: the bubbletea
// program owns process lifetime, and the HTTP client carries its own
// timeout.

func loginCmd(backend Backend, phone string) tea.Cmd {
	return func() tea.Msg {
		response, err := backend.Login(context.Background(), phone)
		return loginResultMsg{phone: phone, response: response, err: err}
	}
}

func fetchProfileCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		user, err := backend.Profile(context.Background())
		return profileMsg{user: user, err: err}
	}
}

func fetchTicketsCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		tickets, err := backend.Tickets(context.Background())
		return ticketsMsg{tickets: tickets, err: err}
	}
}

func createTicketCmd(backend Backend, subject, text string) tea.Cmd {
	return func() tea.Msg {
		ticket, err := backend.CreateTicket(context.Background(), subject, text)
		return ticketCreatedMsg{ticket: ticket, err: err}
	}
}

func fetchPaymentsCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		payments, err := backend.Payments(context.Background())
		return paymentsMsg{payments: payments, err: err}
	}
}

func chatCmd(backend Backend, message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.Chat(context.Background(), message)
		return chatReplyMsg{prompt: message, reply: reply, err: err}
	}
}

func fetchQueueCmd(backend Backend, category, status string) tea.Cmd {
	return func() tea.Msg {
		tickets, err := backend.OperatorTickets(context.Background(), category, status)
		return queueMsg{tickets: tickets, err: err}
	}
}

// fetchOperatorDetailCmd loads the history document and the comment
// thread for one ticket. The two calls run sequentially inside a
// single command so the detail pane appears atomically.
func fetchOperatorDetailCmd(backend Backend, ticketID int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		history, err := backend.TicketHistory(ctx, ticketID)
		if err != nil {
			return operatorDetailMsg{ticketID: ticketID, err: err}
		}
		comments, err := backend.Comments(ctx, ticketID)
		if err != nil {
			return operatorDetailMsg{ticketID: ticketID, err: err}
		}
		return operatorDetailMsg{ticketID: ticketID, history: history, comments: comments}
	}
}

func addCommentCmd(backend Backend, ticketID int64, author, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.AddComment(context.Background(), ticketID, author, text)
		return commentAddedMsg{ticketID: ticketID, err: err}
	}
}

func sendResponseCmd(backend Backend, ticketID int64) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.SendResponse(context.Background(), ticketID)
		return responseSentMsg{ticketID: ticketID, result: result, err: err}
	}
}
