// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desk-foundation/desk/lib/portal"
	"github.com/desk-foundation/desk/lib/session"
)

// fakeBackend is an in-memory Backend that records every call by
// method name, so tests can assert both results and call counts.
type fakeBackend struct {
	calls map[string]int

	user     *portal.User
	tickets  []portal.Ticket
	payments []portal.Payment
	queue    []portal.Ticket
	history  json.RawMessage
	comments map[int64][]portal.Comment

	chatReply string
	loginErr  error
	nextID    int64

	// Last filters passed to OperatorTickets.
	queueCategory string
	queueStatus   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls: make(map[string]int),
		user: &portal.User{
			ID:       1,
			FullName: "Иванов Иван",
			Phone:    "5551234",
			Tariff:   "Домашний 100",
			Services: portal.ServicesFromNames("internet", "tv"),
			Balance:  json.Number("350.50"),
			Debt:     json.Number("0"),
		},
		tickets: []portal.Ticket{
			{ID: 1, Subject: "Нет интернета", Category: "technical", Status: "new", CreatedAt: "2026-03-01T10:00:00"},
			{ID: 2, Subject: "Вопрос по счёту", Category: "billing", Status: "closed", CreatedAt: "2026-03-02T11:00:00"},
		},
		payments: []portal.Payment{
			{ID: 1, Date: "2026-03-01T00:00:00", Amount: json.Number("500"), Service: "Интернет", Status: "completed"},
		},
		queue: []portal.Ticket{
			{ID: 1, ClientPhone: "5551234", Subject: "Нет интернета", Category: "technical", Status: "new", CreatedAt: "2026-03-01T10:00:00"},
			{ID: 3, ClientPhone: "5559999", Subject: "Переплата", Category: "billing", Status: "new", CreatedAt: "2026-03-03T09:00:00"},
		},
		history:   json.RawMessage(`{"tickets_count": 2}`),
		comments:  map[int64][]portal.Comment{},
		chatReply: "Ваш баланс 350.50 ₽",
		nextID:    42,
	}
}

func (f *fakeBackend) Login(ctx context.Context, phone string) (*portal.LoginResponse, error) {
	f.calls["Login"]++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &portal.LoginResponse{Message: "Успешный вход"}, nil
}

func (f *fakeBackend) Profile(ctx context.Context) (*portal.User, error) {
	f.calls["Profile"]++
	return f.user, nil
}

func (f *fakeBackend) Tickets(ctx context.Context) ([]portal.Ticket, error) {
	f.calls["Tickets"]++
	return f.tickets, nil
}

func (f *fakeBackend) CreateTicket(ctx context.Context, subject, text string) (*portal.Ticket, error) {
	f.calls["CreateTicket"]++
	created := portal.Ticket{ID: f.nextID, Subject: subject, Text: text, Category: "billing", Status: "new"}
	f.tickets = append(f.tickets, created)
	return &created, nil
}

func (f *fakeBackend) Payments(ctx context.Context) ([]portal.Payment, error) {
	f.calls["Payments"]++
	return f.payments, nil
}

func (f *fakeBackend) Chat(ctx context.Context, message string) (*portal.ChatResponse, error) {
	f.calls["Chat"]++
	return &portal.ChatResponse{AIMessage: f.chatReply}, nil
}

func (f *fakeBackend) OperatorTickets(ctx context.Context, category, status string) ([]portal.Ticket, error) {
	f.calls["OperatorTickets"]++
	f.queueCategory, f.queueStatus = category, status
	return f.queue, nil
}

func (f *fakeBackend) TicketHistory(ctx context.Context, ticketID int64) (json.RawMessage, error) {
	f.calls["TicketHistory"]++
	return f.history, nil
}

func (f *fakeBackend) Comments(ctx context.Context, ticketID int64) ([]portal.Comment, error) {
	f.calls["Comments"]++
	return f.comments[ticketID], nil
}

func (f *fakeBackend) AddComment(ctx context.Context, ticketID int64, author, text string) (*portal.Comment, error) {
	f.calls["AddComment"]++
	comment := portal.Comment{ID: int64(len(f.comments[ticketID]) + 1), Author: author, Text: text, CreatedAt: "2026-03-05T12:00:00"}
	f.comments[ticketID] = append(f.comments[ticketID], comment)
	return &comment, nil
}

func (f *fakeBackend) SendResponse(ctx context.Context, ticketID int64) (*portal.SendResponseResult, error) {
	f.calls["SendResponse"]++
	return &portal.SendResponseResult{AIResponse: "Мы проверили линию", Message: "Ответ отправлен клиенту"}, nil
}

var _ Backend = (*fakeBackend)(nil)

// emptyStore returns a session store with no saved phone.
func emptyStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

// loggedInStore returns a session store holding a saved phone.
func loggedInStore(t *testing.T) *session.Store {
	t.Helper()
	store := emptyStore(t)
	if err := store.Save("5551234"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return store
}

// sized delivers a WindowSizeMsg so View renders real content.
func sized(t *testing.T, model Model) Model {
	t.Helper()
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return updated.(Model)
}

// typeText feeds a string into the model one rune event at a time.
func typeText(model Model, text string) Model {
	for _, r := range text {
		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		model = updated.(Model)
	}
	return model
}

// press sends a single key event.
func press(model Model, keyType tea.KeyType) (Model, tea.Cmd) {
	updated, command := model.Update(tea.KeyMsg{Type: keyType})
	return updated.(Model), command
}

// deliver runs a tea.Cmd (flattening batches) and feeds every message
// it produces back into the model, returning any follow-up commands.
func deliver(t *testing.T, model Model, command tea.Cmd) (Model, []tea.Cmd) {
	t.Helper()
	if command == nil {
		return model, nil
	}
	var followups []tea.Cmd
	for _, message := range runCmd(command) {
		updated, next := model.Update(message)
		model = updated.(Model)
		if next != nil {
			followups = append(followups, next)
		}
	}
	return model, followups
}

// runCmd executes a command, expanding tea.Batch results, and returns
// the messages produced. Spinner ticks are dropped: they reschedule
// themselves forever.
func runCmd(command tea.Cmd) []tea.Msg {
	message := command()
	switch message := message.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, sub := range message {
			out = append(out, runCmd(sub)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{message}
	}
}

func TestNewModelOpensLoginWithoutSession(t *testing.T) {
	model := NewModel(newFakeBackend(), emptyStore(t))
	if model.view != ViewLogin {
		t.Errorf("view = %d, want ViewLogin", model.view)
	}
}

func TestNewModelOpensDashboardWithSession(t *testing.T) {
	model := NewModel(newFakeBackend(), loggedInStore(t))
	if model.view != ViewDashboard {
		t.Errorf("view = %d, want ViewDashboard", model.view)
	}
	if model.phone != "5551234" {
		t.Errorf("phone = %q, want 5551234", model.phone)
	}
}

func TestLoginEmptyPhoneRejectedLocally(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, emptyStore(t)))

	model, command := press(model, tea.KeyEnter)
	if command != nil {
		t.Error("empty phone should not issue a backend call")
	}
	if model.errorText != "Введите телефон" {
		t.Errorf("errorText = %q, want Введите телефон", model.errorText)
	}
	if backend.calls["Login"] != 0 {
		t.Errorf("Login called %d times, want 0", backend.calls["Login"])
	}
}

func TestLoginSuccessSavesSessionAndOpensDashboard(t *testing.T) {
	backend := newFakeBackend()
	store := emptyStore(t)
	model := sized(t, NewModel(backend, store))

	model = typeText(model, "5551234")
	model, command := press(model, tea.KeyEnter)
	model, followups := deliver(t, model, command)

	if model.view != ViewDashboard {
		t.Fatalf("view = %d, want ViewDashboard", model.view)
	}
	if model.notice != "Успешный вход" {
		t.Errorf("notice = %q, want Успешный вход", model.notice)
	}
	if phone, err := store.Load(); err != nil || phone != "5551234" {
		t.Errorf("stored session = %q, %v; want 5551234", phone, err)
	}

	// Entering the dashboard triggers the profile fetch.
	for _, followup := range followups {
		model, _ = deliver(t, model, followup)
	}
	if backend.calls["Profile"] != 1 {
		t.Errorf("Profile called %d times, want 1", backend.calls["Profile"])
	}
	if model.user == nil || model.user.FullName != "Иванов Иван" {
		t.Errorf("user not loaded: %+v", model.user)
	}
}

func TestTicketFormValidationKeepsForm(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	command := model.switchView(ViewTickets)
	model, _ = deliver(t, model, command)

	// Open the form and type only a subject.
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	model = updated.(Model)
	model = typeText(model, "Нет связи")

	model, command = press(model, tea.KeyCtrlD)
	if command != nil {
		t.Error("incomplete form should not issue a backend call")
	}
	if model.errorText != "Заполните тему и описание" {
		t.Errorf("errorText = %q, want Заполните тему и описание", model.errorText)
	}
	if model.activeForm != formNewTicket {
		t.Error("form should stay open after validation failure")
	}
	if model.subjectInput.Value() != "Нет связи" {
		t.Errorf("subject = %q, want retained value", model.subjectInput.Value())
	}
	if backend.calls["CreateTicket"] != 0 {
		t.Errorf("CreateTicket called %d times, want 0", backend.calls["CreateTicket"])
	}
}

func TestTicketCreateClearsFormAndRefetches(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	command := model.switchView(ViewTickets)
	model, _ = deliver(t, model, command)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	model = updated.(Model)
	model = typeText(model, "Переплата")
	model, _ = press(model, tea.KeyEnter) // Subject done, focus moves to text.
	model = typeText(model, "Списали дважды за март")

	model, command = press(model, tea.KeyCtrlD)
	model, followups := deliver(t, model, command)

	want := "Заявка №42 создана. Категория: billing"
	if model.notice != want {
		t.Errorf("notice = %q, want %q", model.notice, want)
	}
	if model.activeForm != formNone {
		t.Error("form should close after successful creation")
	}
	if model.subjectInput.Value() != "" || model.textArea.Value() != "" {
		t.Error("form contents should clear after successful creation")
	}

	// The creation result triggers a ticket list refetch.
	for _, followup := range followups {
		model, _ = deliver(t, model, followup)
	}
	if len(model.tickets) != 3 {
		t.Errorf("tickets = %d entries after refetch, want 3", len(model.tickets))
	}
}

func TestChatWithoutSessionExplainsInTranscript(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, emptyStore(t)))
	model.view = ViewChat
	model.chatInput.Focus()

	model = typeText(model, "Какой у меня баланс?")
	model, command := press(model, tea.KeyEnter)
	if command != nil {
		t.Error("chat without a session should not issue a backend call")
	}

	if len(model.transcript) != 2 {
		t.Fatalf("transcript = %d lines, want 2", len(model.transcript))
	}
	if !model.transcript[0].fromUser || model.transcript[0].text != "Какой у меня баланс?" {
		t.Errorf("first line = %+v, want the user's message", model.transcript[0])
	}
	if model.transcript[1].fromUser || !strings.Contains(model.transcript[1].text, "Войдите") {
		t.Errorf("second line = %+v, want the login notice", model.transcript[1])
	}
	if backend.calls["Chat"] != 0 {
		t.Errorf("Chat called %d times, want 0", backend.calls["Chat"])
	}
}

func TestChatReplyReplacesPlaceholder(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.view = ViewChat
	model.chatInput.Focus()

	model = typeText(model, "Какой у меня баланс?")
	model, command := press(model, tea.KeyEnter)

	// While the call is in flight the transcript shows the placeholder.
	if len(model.transcript) != 2 || !model.transcript[1].pending {
		t.Fatalf("transcript before reply = %+v, want pending placeholder", model.transcript)
	}
	if model.transcript[1].text != "Печатает..." {
		t.Errorf("placeholder = %q, want Печатает...", model.transcript[1].text)
	}

	model, _ = deliver(t, model, command)
	if len(model.transcript) != 2 {
		t.Fatalf("transcript after reply = %d lines, want 2", len(model.transcript))
	}
	if model.transcript[1].pending || model.transcript[1].text != "Ваш баланс 350.50 ₽" {
		t.Errorf("reply line = %+v, want the assistant reply in place", model.transcript[1])
	}
}

func TestStaleChatReplyDropped(t *testing.T) {
	model := sized(t, NewModel(newFakeBackend(), loggedInStore(t)))
	model.view = ViewChat
	model.chatPrompt = "второй вопрос"
	model.transcript = []chatLine{
		{fromUser: true, text: "второй вопрос"},
		{pending: true, text: pendingReplyText},
	}

	// A reply for an earlier, abandoned prompt arrives late.
	updated, _ := model.Update(chatReplyMsg{prompt: "первый вопрос", reply: &portal.ChatResponse{AIMessage: "старый ответ"}})
	model = updated.(Model)

	if !model.transcript[1].pending {
		t.Error("stale reply should not resolve the pending placeholder")
	}
}

func TestNavigationRefetchesViewData(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))

	// 3 switches to payments and fetches them.
	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	model = updated.(Model)
	if model.view != ViewPayments {
		t.Fatalf("view = %d, want ViewPayments", model.view)
	}
	model, _ = deliver(t, model, command)
	if backend.calls["Payments"] != 1 {
		t.Errorf("Payments called %d times, want 1", backend.calls["Payments"])
	}

	// Switching away and back fetches again: navigation is the cache policy.
	updated, command = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	model = updated.(Model)
	model, _ = deliver(t, model, command)
	updated, command = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	model = updated.(Model)
	model, _ = deliver(t, model, command)
	if backend.calls["Payments"] != 2 {
		t.Errorf("Payments called %d times after revisit, want 2", backend.calls["Payments"])
	}
	if len(model.payments) != 1 {
		t.Errorf("payments = %d entries, want 1", len(model.payments))
	}
}

func TestOperatorTabHiddenUntilEnabled(t *testing.T) {
	model := sized(t, NewModel(newFakeBackend(), loggedInStore(t)))

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})
	model = updated.(Model)
	if model.view == ViewQueue || command != nil {
		t.Error("operator tab should be inert until enabled")
	}
	if strings.Contains(model.View(), "Оператор") {
		t.Error("header should not show the operator tab")
	}
}

func TestOperatorDetailLoadsHistoryAndComments(t *testing.T) {
	backend := newFakeBackend()
	backend.comments[3] = []portal.Comment{{Author: "operator", Text: "Проверяю начисления", CreatedAt: "2026-03-04T10:00:00"}}

	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)

	// Move to the second ticket and open it.
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	model = updated.(Model)
	model, command = press(model, tea.KeyEnter)
	if model.view != ViewQueueDetail {
		t.Fatalf("view = %d, want ViewQueueDetail", model.view)
	}
	if model.detailID != 3 {
		t.Fatalf("detailID = %d, want 3", model.detailID)
	}

	model, _ = deliver(t, model, command)
	if !model.detailLoaded {
		t.Fatal("detail should be loaded after the fetch completes")
	}
	view := model.View()
	if !strings.Contains(view, "tickets_count") {
		t.Error("detail should show the raw history document")
	}
	if !strings.Contains(view, "Проверяю начисления") {
		t.Error("detail should show the comment thread")
	}
}

func TestOperatorCommentReloadsThread(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)
	model, command = press(model, tea.KeyEnter)
	model, _ = deliver(t, model, command)

	// Open the comment form, write, submit.
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	model = updated.(Model)
	if model.activeForm != formComment {
		t.Fatal("comment form should open")
	}
	model = typeText(model, "Линия восстановлена")
	model, command = press(model, tea.KeyCtrlD)
	model, followups := deliver(t, model, command)

	if backend.calls["AddComment"] != 1 {
		t.Fatalf("AddComment called %d times, want 1", backend.calls["AddComment"])
	}
	if got := backend.comments[1][0]; got.Author != "operator" || got.Text != "Линия восстановлена" {
		t.Errorf("stored comment = %+v", got)
	}

	// The post triggers a detail reload that includes the new comment.
	for _, followup := range followups {
		model, _ = deliver(t, model, followup)
	}
	if !strings.Contains(model.View(), "Линия восстановлена") {
		t.Error("reloaded detail should include the new comment")
	}
}

func TestStaleOperatorDetailDropped(t *testing.T) {
	model := sized(t, NewModel(newFakeBackend(), loggedInStore(t)))
	model.EnableOperator("operator")
	model.view = ViewQueueDetail
	model.detailID = 3

	// A load for a previously opened ticket completes late.
	updated, _ := model.Update(operatorDetailMsg{ticketID: 1, history: json.RawMessage(`{}`)})
	model = updated.(Model)
	if model.detailLoaded {
		t.Error("stale detail result should be dropped")
	}
}

func TestSendResponseShowsConfirmation(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)
	model, command = press(model, tea.KeyEnter)
	model, _ = deliver(t, model, command)

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	model = updated.(Model)
	model, _ = deliver(t, model, command)

	if backend.calls["SendResponse"] != 1 {
		t.Errorf("SendResponse called %d times, want 1", backend.calls["SendResponse"])
	}
	if model.notice != "Ответ отправлен клиенту" {
		t.Errorf("notice = %q, want the delivery confirmation", model.notice)
	}
}

func TestOperatorQueueShowsAssignee(t *testing.T) {
	backend := newFakeBackend()
	backend.queue[0].AssignedTo = "ivanova"

	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)

	view := model.View()
	if !strings.Contains(view, "Исполнитель") {
		t.Error("queue table should have an assignee column")
	}
	if !strings.Contains(view, "ivanova") {
		t.Error("queue table should render the ticket assignee")
	}
}

func TestOperatorQueueFilterRefetches(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)

	// Open the filter form, set both filters, apply.
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	model = updated.(Model)
	if model.activeForm != formQueueFilter {
		t.Fatal("filter form should open")
	}
	model = typeText(model, "billing")
	model, _ = press(model, tea.KeyTab)
	model = typeText(model, "new")
	model, command = press(model, tea.KeyCtrlD)
	model, _ = deliver(t, model, command)

	if backend.calls["OperatorTickets"] != 2 {
		t.Fatalf("OperatorTickets called %d times, want 2", backend.calls["OperatorTickets"])
	}
	if backend.queueCategory != "billing" || backend.queueStatus != "new" {
		t.Errorf("filters = %q/%q, want billing/new", backend.queueCategory, backend.queueStatus)
	}
	if model.activeForm != formNone {
		t.Error("filter form should close after applying")
	}

	// A plain refresh keeps the applied filters.
	updated, command = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	model = updated.(Model)
	model, _ = deliver(t, model, command)
	if backend.queueCategory != "billing" || backend.queueStatus != "new" {
		t.Errorf("refresh filters = %q/%q, want billing/new", backend.queueCategory, backend.queueStatus)
	}
}

func TestSendResponseShowsGeneratedText(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	model.EnableOperator("operator")
	command := model.switchView(ViewQueue)
	model, _ = deliver(t, model, command)
	model, command = press(model, tea.KeyEnter)
	model, _ = deliver(t, model, command)

	updated, command := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	model = updated.(Model)
	model, followups := deliver(t, model, command)
	for _, followup := range followups {
		model, _ = deliver(t, model, followup)
	}

	view := model.View()
	if !strings.Contains(view, "Мы проверили линию") {
		t.Error("detail should show the generated response text")
	}
	if !strings.Contains(view, "Ответ поддержки") {
		t.Error("detail should label the generated response section")
	}
}

func TestLogoutClearsSessionAndReturnsToLogin(t *testing.T) {
	backend := newFakeBackend()
	store := loggedInStore(t)
	model := sized(t, NewModel(backend, store))
	command := model.switchView(ViewDashboard)
	model, _ = deliver(t, model, command)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	model = updated.(Model)

	if model.view != ViewLogin {
		t.Fatalf("view = %d, want ViewLogin", model.view)
	}
	if model.phone != "" || model.user != nil {
		t.Error("logout should drop the account state")
	}
	if _, err := store.Load(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("Load after logout = %v, want ErrNoSession", err)
	}
	if model.phoneInput.Value() != "" {
		t.Errorf("phone input = %q, want empty for the next login", model.phoneInput.Value())
	}
}

func TestFormSubmitFollowsRebinding(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	command := model.switchView(ViewTickets)
	model, _ = deliver(t, model, command)
	model.keys.Submit = key.NewBinding(key.WithKeys("ctrl+s"))

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	model = updated.(Model)
	model = typeText(model, "Переплата")
	model, _ = press(model, tea.KeyEnter)
	model = typeText(model, "Списали дважды")

	// The old binding no longer submits.
	model, _ = press(model, tea.KeyCtrlD)
	if backend.calls["CreateTicket"] != 0 {
		t.Fatal("unbound key should not submit the form")
	}

	model, command = press(model, tea.KeyCtrlS)
	model, _ = deliver(t, model, command)
	if backend.calls["CreateTicket"] != 1 {
		t.Errorf("CreateTicket called %d times, want 1", backend.calls["CreateTicket"])
	}
}

func TestViewRendersTicketTable(t *testing.T) {
	backend := newFakeBackend()
	model := sized(t, NewModel(backend, loggedInStore(t)))
	command := model.switchView(ViewTickets)
	model, _ = deliver(t, model, command)

	view := model.View()
	if !strings.Contains(view, "Нет интернета") {
		t.Error("view should contain the first ticket subject")
	}
	if !strings.Contains(view, "Вопрос по счёту") {
		t.Error("view should contain the second ticket subject")
	}
	if !strings.Contains(view, "2:Заявки") {
		t.Error("view should contain the tab bar")
	}
}

func TestViewBeforeResizeShowsLoading(t *testing.T) {
	model := NewModel(newFakeBackend(), loggedInStore(t))
	if view := model.View(); view != "Loading..." {
		t.Errorf("View() = %q before WindowSizeMsg, want Loading...", view)
	}
}
