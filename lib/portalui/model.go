// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desk-foundation/desk/lib/portal"
	"github.com/desk-foundation/desk/lib/session"
)

// View identifies which screen is active.
type View int

const (
	// ViewLogin is the phone entry screen, shown until a session exists.
	ViewLogin View = iota
	// ViewDashboard shows the client's profile and account state.
	ViewDashboard
	// ViewTickets shows the client's tickets and the creation form.
	ViewTickets
	// ViewPayments shows the client's payment history.
	ViewPayments
	// ViewChat is the AI assistant transcript.
	ViewChat
	// ViewQueue is the operator queue across all clients.
	ViewQueue
	// ViewQueueDetail shows one queue ticket's client history and
	// comment thread.
	ViewQueueDetail
)

// form identifies which input form, if any, is active. While a form
// is active all keyboard input routes to it.
type form int

const (
	formNone form = iota
	// formNewTicket is the subject+text ticket creation form.
	formNewTicket
	// formComment is the operator comment textarea.
	formComment
	// formQueueFilter is the category+status filter form for the
	// operator queue.
	formQueueFilter
)

// chatLine is one entry in the AI assistant transcript.
type chatLine struct {
	// fromUser is true for the client's own messages.
	fromUser bool
	// pending marks the assistant placeholder shown while a reply is
	// in flight. The reply replaces the line in place.
	pending bool
	text    string
}

// pendingReplyText is the assistant placeholder shown while waiting.
const pendingReplyText = "Печатает..."

// Model is the top-level bubbletea model for the portal console.
type Model struct {
	backend  Backend
	sessions *session.Store
	theme    Theme
	keys     KeyMap

	// Operator console. Hidden until EnableOperator is called.
	operator bool
	author   string

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Logged-in phone. Empty until login succeeds (or a session
	// existed when the console started).
	phone string

	view       View
	activeForm form

	// Status bar feedback. errorText wins over notice when both are
	// set; both clear on the next keypress.
	errorText string
	notice    string

	// In-flight backend calls. The spinner runs while nonzero.
	inflight int
	spinner  spinner.Model

	// Login screen.
	phoneInput textinput.Model

	// Dashboard.
	user *portal.User

	// Tickets.
	tickets      []portal.Ticket
	ticketCursor int
	subjectInput textinput.Model
	textArea     textarea.Model
	// formFocusSubject routes form keystrokes to the subject input
	// (true) or the text area (false).
	formFocusSubject bool

	// Payments.
	payments      []portal.Payment
	paymentCursor int

	// Chat.
	transcript   []chatLine
	chatInput    textinput.Model
	chatViewport viewport.Model
	// chatPrompt is the message awaiting a reply; replies for any
	// other prompt are stale and dropped.
	chatPrompt string

	// Operator queue and detail.
	queue       []portal.Ticket
	queueCursor int
	// Queue filters, applied on every queue fetch. Empty matches all.
	queueCategory string
	queueStatus   string
	categoryInput textinput.Model
	statusInput   textinput.Model
	// filterFocusCategory routes filter form keystrokes to the
	// category input (true) or the status input (false).
	filterFocusCategory bool

	detailID       int64
	detailTicket   *portal.Ticket
	detailLoaded   bool
	detailHistory  json.RawMessage
	detailComments []portal.Comment
	// detailResponse is the AI text generated for the open ticket by
	// the last send, shown in the detail pane next to the thread.
	detailResponse string
	detailViewport viewport.Model
	commentArea    textarea.Model
}

// NewModel creates a Model connected to the given backend. If the
// session store already holds a phone the console opens on the
// dashboard; otherwise it opens on the login screen.
func NewModel(backend Backend, sessions *session.Store) Model {
	phoneInput := textinput.New()
	phoneInput.Placeholder = "+7 900 000-00-00"
	phoneInput.CharLimit = 20
	phoneInput.Focus()

	subjectInput := textinput.New()
	subjectInput.Placeholder = "Тема"
	subjectInput.CharLimit = 120

	textArea := textarea.New()
	textArea.Placeholder = "Опишите проблему"

	chatInput := textinput.New()
	chatInput.Placeholder = "Сообщение AI-ассистенту"

	commentArea := textarea.New()
	commentArea.Placeholder = "Внутренний комментарий"

	categoryInput := textinput.New()
	categoryInput.Placeholder = "Категория (пусто — все)"
	statusInput := textinput.New()
	statusInput.Placeholder = "Статус (пусто — все)"

	loading := spinner.New(spinner.WithSpinner(spinner.Dot))

	model := Model{
		backend:       backend,
		sessions:      sessions,
		theme:         DefaultTheme,
		keys:          DefaultKeyMap,
		view:          ViewLogin,
		spinner:       loading,
		phoneInput:    phoneInput,
		subjectInput:  subjectInput,
		textArea:      textArea,
		chatInput:     chatInput,
		commentArea:   commentArea,
		categoryInput: categoryInput,
		statusInput:   statusInput,
	}

	if phone, err := sessions.Load(); err == nil {
		model.phone = phone
		model.view = ViewDashboard
	}

	return model
}

// EnableOperator shows the operator queue tab. author is the name
// recorded on comments the operator leaves. Call after NewModel and
// before running the bubbletea program.
func (model *Model) EnableOperator(author string) {
	model.operator = true
	model.author = author
}

// Init implements tea.Model. Kicks off the data fetch for the opening
// view and the cursor blink for the login input.
func (model Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, model.refreshCmd(model.view))
}

// refreshCmd returns the backend fetch for a view's data, or nil for
// views that hold no server data (login, chat).
func (model Model) refreshCmd(view View) tea.Cmd {
	switch view {
	case ViewDashboard:
		return fetchProfileCmd(model.backend)
	case ViewTickets:
		return fetchTicketsCmd(model.backend)
	case ViewPayments:
		return fetchPaymentsCmd(model.backend)
	case ViewQueue:
		return fetchQueueCmd(model.backend, model.queueCategory, model.queueStatus)
	case ViewQueueDetail:
		return fetchOperatorDetailCmd(model.backend, model.detailID)
	default:
		return nil
	}
}

// startCall wraps a backend command, counting it as in flight and
// starting the spinner when it is the first one.
func (model *Model) startCall(command tea.Cmd) tea.Cmd {
	if command == nil {
		return nil
	}
	model.inflight++
	if model.inflight == 1 {
		return tea.Batch(command, model.spinner.Tick)
	}
	return command
}

// callDone marks one backend call complete.
func (model *Model) callDone() {
	if model.inflight > 0 {
		model.inflight--
	}
}

// switchView navigates to a view, clearing transient state and
// fetching that view's data. Navigation always refetches: the console
// holds no cache to invalidate.
func (model *Model) switchView(view View) tea.Cmd {
	model.view = view
	model.activeForm = formNone
	model.errorText = ""
	model.notice = ""
	if view == ViewChat {
		// The transcript is transient: re-entering the chat starts a
		// fresh exchange, and any in-flight reply becomes stale.
		model.transcript = nil
		model.chatPrompt = ""
		model.syncChatViewport()
	}
	return model.startCall(model.refreshCmd(view))
}

// fail puts a backend error into the status bar.
func (model *Model) fail(err error, fallback string) {
	model.errorText = portal.UserMessage(err, fallback)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.resize()
		return model, nil

	case spinner.TickMsg:
		if model.inflight == 0 {
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command

	case loginResultMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Ошибка входа")
			return model, nil
		}
		if err := model.sessions.Save(message.phone); err != nil {
			model.errorText = err.Error()
			return model, nil
		}
		model.phone = message.phone
		command := model.switchView(ViewDashboard)
		// Set after switchView, which clears transient feedback.
		model.notice = message.response.Message
		return model, command

	case profileMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось загрузить профиль")
			return model, nil
		}
		model.user = message.user
		return model, nil

	case ticketsMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось загрузить заявки")
			return model, nil
		}
		model.tickets = message.tickets
		model.clampCursors()
		return model, nil

	case ticketCreatedMsg:
		model.callDone()
		if message.err != nil {
			// Keep the form contents so the user can fix and resubmit.
			model.fail(message.err, "Ошибка создания заявки")
			return model, nil
		}
		model.notice = fmt.Sprintf("Заявка №%d создана. Категория: %s",
			message.ticket.ID, message.ticket.Category)
		model.activeForm = formNone
		model.subjectInput.SetValue("")
		model.textArea.Reset()
		return model, model.startCall(fetchTicketsCmd(model.backend))

	case paymentsMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось загрузить платежи")
			return model, nil
		}
		model.payments = message.payments
		model.clampCursors()
		return model, nil

	case chatReplyMsg:
		model.callDone()
		if message.prompt != model.chatPrompt {
			// Reply to an abandoned exchange.
			return model, nil
		}
		model.chatPrompt = ""
		text := ""
		if message.err != nil {
			text = portal.UserMessage(message.err, "Не удалось получить ответ от AI")
		} else {
			text = message.reply.AIMessage
		}
		model.resolvePendingReply(text)
		model.syncChatViewport()
		return model, nil

	case queueMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось загрузить очередь заявок")
			return model, nil
		}
		model.queue = message.tickets
		model.clampCursors()
		return model, nil

	case operatorDetailMsg:
		model.callDone()
		if message.ticketID != model.detailID {
			// The operator already opened a different ticket.
			return model, nil
		}
		if message.err != nil {
			model.fail(message.err, "Не удалось загрузить заявку")
			return model, nil
		}
		model.detailLoaded = true
		model.detailHistory = message.history
		model.detailComments = message.comments
		model.refreshDetailViewport()
		return model, nil

	case commentAddedMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось добавить комментарий")
			return model, nil
		}
		model.activeForm = formNone
		model.commentArea.Reset()
		model.notice = "Комментарий добавлен"
		if message.ticketID == model.detailID {
			return model, model.startCall(fetchOperatorDetailCmd(model.backend, model.detailID))
		}
		return model, nil

	case responseSentMsg:
		model.callDone()
		if message.err != nil {
			model.fail(message.err, "Не удалось отправить ответ")
			return model, nil
		}
		model.notice = message.result.Message
		if message.ticketID == model.detailID {
			model.detailResponse = message.result.AIResponse
			if model.detailLoaded {
				model.refreshDetailViewport()
			}
			return model, model.startCall(fetchOperatorDetailCmd(model.backend, model.detailID))
		}
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleKey routes keyboard input by screen and form state.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Feedback from the previous action clears on the next keypress.
	model.errorText = ""
	model.notice = ""

	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	if model.view == ViewLogin {
		return model.handleLoginKeys(message)
	}
	if model.activeForm != formNone {
		return model.handleFormKeys(message)
	}
	if model.view == ViewChat {
		return model.handleChatKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.TabDashboard):
		return model, model.switchView(ViewDashboard)
	case key.Matches(message, model.keys.TabTickets):
		return model, model.switchView(ViewTickets)
	case key.Matches(message, model.keys.TabPayments):
		return model, model.switchView(ViewPayments)
	case key.Matches(message, model.keys.TabChat):
		command := model.switchView(ViewChat)
		model.chatInput.Focus()
		model.syncChatViewport()
		return model, tea.Batch(command, textinput.Blink)
	case key.Matches(message, model.keys.TabOperator):
		if !model.operator {
			return model, nil
		}
		return model, model.switchView(ViewQueue)

	case key.Matches(message, model.keys.Refresh):
		return model, model.startCall(model.refreshCmd(model.view))

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.pageSize())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.pageSize())

	case key.Matches(message, model.keys.New):
		if model.view == ViewTickets {
			model.activeForm = formNewTicket
			model.formFocusSubject = true
			model.subjectInput.Focus()
			model.textArea.Blur()
			return model, textinput.Blink
		}

	case key.Matches(message, model.keys.Select):
		if model.view == ViewQueue && model.queueCursor < len(model.queue) {
			selected := model.queue[model.queueCursor]
			model.detailID = selected.ID
			model.detailTicket = &selected
			model.detailLoaded = false
			model.detailResponse = ""
			return model, model.switchView(ViewQueueDetail)
		}

	case key.Matches(message, model.keys.Filter):
		if model.view == ViewQueue {
			model.activeForm = formQueueFilter
			model.filterFocusCategory = true
			model.categoryInput.SetValue(model.queueCategory)
			model.statusInput.SetValue(model.queueStatus)
			model.categoryInput.Focus()
			model.statusInput.Blur()
			return model, textinput.Blink
		}

	case key.Matches(message, model.keys.Logout):
		return model.logout()

	case key.Matches(message, model.keys.Comment):
		if model.view == ViewQueueDetail {
			model.activeForm = formComment
			model.commentArea.Focus()
			return model, textinput.Blink
		}

	case key.Matches(message, model.keys.Respond):
		if model.view == ViewQueueDetail {
			return model, model.startCall(sendResponseCmd(model.backend, model.detailID))
		}

	case key.Matches(message, model.keys.Cancel):
		if model.view == ViewQueueDetail {
			return model, model.switchView(ViewQueue)
		}
	}

	// Scroll the detail viewport with any remaining keys.
	if model.view == ViewQueueDetail {
		var command tea.Cmd
		model.detailViewport, command = model.detailViewport.Update(message)
		return model, command
	}

	return model, nil
}

// handleLoginKeys routes input on the login screen. Everything except
// Enter goes to the phone input.
func (model Model) handleLoginKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyEnter {
		phone := model.phoneInput.Value()
		if isBlank(phone) {
			model.errorText = "Введите телефон"
			return model, nil
		}
		return model, model.startCall(loginCmd(model.backend, phone))
	}

	var command tea.Cmd
	model.phoneInput, command = model.phoneInput.Update(message)
	return model, command
}

// handleFormKeys routes input while a form overlay is active.
func (model Model) handleFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.activeForm = formNone
		return model, nil
	case key.Matches(message, model.keys.Submit):
		return model.submitForm()
	}

	switch message.Type {
	case tea.KeyTab:
		switch model.activeForm {
		case formNewTicket:
			model.formFocusSubject = !model.formFocusSubject
			if model.formFocusSubject {
				model.subjectInput.Focus()
				model.textArea.Blur()
			} else {
				model.subjectInput.Blur()
				model.textArea.Focus()
			}
			return model, textinput.Blink
		case formQueueFilter:
			model.filterFocusCategory = !model.filterFocusCategory
			if model.filterFocusCategory {
				model.categoryInput.Focus()
				model.statusInput.Blur()
			} else {
				model.categoryInput.Blur()
				model.statusInput.Focus()
			}
			return model, textinput.Blink
		}

	case tea.KeyEnter:
		// Enter submits the single-line stage of the ticket form and
		// applies the queue filters; inside a textarea it inserts a
		// newline as usual.
		if model.activeForm == formNewTicket && model.formFocusSubject {
			model.formFocusSubject = false
			model.subjectInput.Blur()
			model.textArea.Focus()
			return model, textinput.Blink
		}
		if model.activeForm == formQueueFilter {
			return model.submitForm()
		}
	}

	var command tea.Cmd
	switch {
	case model.activeForm == formNewTicket && model.formFocusSubject:
		model.subjectInput, command = model.subjectInput.Update(message)
	case model.activeForm == formNewTicket:
		model.textArea, command = model.textArea.Update(message)
	case model.activeForm == formComment:
		model.commentArea, command = model.commentArea.Update(message)
	case model.activeForm == formQueueFilter && model.filterFocusCategory:
		model.categoryInput, command = model.categoryInput.Update(message)
	case model.activeForm == formQueueFilter:
		model.statusInput, command = model.statusInput.Update(message)
	}
	return model, command
}

// submitForm validates and submits the active form.
func (model Model) submitForm() (tea.Model, tea.Cmd) {
	switch model.activeForm {
	case formNewTicket:
		subject := model.subjectInput.Value()
		text := model.textArea.Value()
		if isBlank(subject) || isBlank(text) {
			// Form stays open with its contents intact.
			model.errorText = "Заполните тему и описание"
			return model, nil
		}
		return model, model.startCall(createTicketCmd(model.backend, subject, text))

	case formComment:
		text := model.commentArea.Value()
		if isBlank(text) {
			model.errorText = "Введите текст комментария"
			return model, nil
		}
		return model, model.startCall(addCommentCmd(model.backend, model.detailID, model.author, text))

	case formQueueFilter:
		// Empty fields clear their filter; no validation applies.
		model.queueCategory = strings.TrimSpace(model.categoryInput.Value())
		model.queueStatus = strings.TrimSpace(model.statusInput.Value())
		model.activeForm = formNone
		return model, model.startCall(model.refreshCmd(ViewQueue))
	}
	return model, nil
}

// logout clears the saved session and returns the console to the
// login screen. All per-account state is dropped so a different phone
// can log in from the same process.
func (model Model) logout() (tea.Model, tea.Cmd) {
	if err := model.sessions.Clear(); err != nil {
		model.errorText = err.Error()
		return model, nil
	}
	model.phone = ""
	model.user = nil
	model.tickets = nil
	model.payments = nil
	model.queue = nil
	model.transcript = nil
	model.chatPrompt = ""
	model.queueCategory = ""
	model.queueStatus = ""
	model.detailTicket = nil
	model.detailLoaded = false
	model.detailHistory = nil
	model.detailComments = nil
	model.detailResponse = ""
	model.ticketCursor = 0
	model.paymentCursor = 0
	model.queueCursor = 0
	model.view = ViewLogin
	model.activeForm = formNone
	model.phoneInput.SetValue("")
	model.phoneInput.Focus()
	return model, textinput.Blink
}

// handleChatKeys routes input on the chat screen. The message input
// holds focus, so tab digits and list keys type into it; Esc blurs
// the input to reach the global bindings, and any rune refocuses it.
func (model Model) handleChatKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.chatInput.Focused() {
		switch message.Type {
		case tea.KeyEnter:
			return model.submitChat()
		case tea.KeyEsc:
			model.chatInput.Blur()
			return model, nil
		}
		var command tea.Cmd
		model.chatInput, command = model.chatInput.Update(message)
		return model, command
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.TabDashboard):
		return model, model.switchView(ViewDashboard)
	case key.Matches(message, model.keys.TabTickets):
		return model, model.switchView(ViewTickets)
	case key.Matches(message, model.keys.TabPayments):
		return model, model.switchView(ViewPayments)
	case key.Matches(message, model.keys.TabOperator):
		if !model.operator {
			return model, nil
		}
		return model, model.switchView(ViewQueue)
	case key.Matches(message, model.keys.Logout):
		return model.logout()
	case key.Matches(message, model.keys.Up),
		key.Matches(message, model.keys.Down),
		key.Matches(message, model.keys.PageUp),
		key.Matches(message, model.keys.PageDown):
		var command tea.Cmd
		model.chatViewport, command = model.chatViewport.Update(message)
		return model, command
	}

	if message.Type == tea.KeyRunes {
		model.chatInput.Focus()
		var command tea.Cmd
		model.chatInput, command = model.chatInput.Update(message)
		return model, tea.Batch(command, textinput.Blink)
	}
	return model, nil
}

// submitChat sends the typed message to the assistant, appending the
// user line and the pending placeholder to the transcript.
func (model Model) submitChat() (tea.Model, tea.Cmd) {
	text := model.chatInput.Value()
	if isBlank(text) {
		return model, nil
	}
	model.chatInput.SetValue("")
	model.transcript = append(model.transcript, chatLine{fromUser: true, text: text})

	if model.phone == "" {
		// Should not happen past the login screen, but the transcript
		// still explains itself rather than going silent.
		model.transcript = append(model.transcript, chatLine{
			text: "Войдите, чтобы задать вопрос AI-ассистенту",
		})
		model.syncChatViewport()
		return model, nil
	}

	model.transcript = append(model.transcript, chatLine{pending: true, text: pendingReplyText})
	model.chatPrompt = text
	model.syncChatViewport()
	return model, model.startCall(chatCmd(model.backend, text))
}

// resolvePendingReply replaces the trailing placeholder line with the
// assistant's reply. If the user resubmitted and no placeholder is
// left, the reply appends instead.
func (model *Model) resolvePendingReply(text string) {
	for i := len(model.transcript) - 1; i >= 0; i-- {
		if model.transcript[i].pending {
			model.transcript[i] = chatLine{text: text}
			return
		}
	}
	model.transcript = append(model.transcript, chatLine{text: text})
}

// moveCursor moves the active list cursor by delta, clamped to the
// list bounds.
func (model *Model) moveCursor(delta int) {
	move := func(cursor *int, length int) {
		*cursor += delta
		if *cursor < 0 {
			*cursor = 0
		}
		if *cursor >= length && length > 0 {
			*cursor = length - 1
		}
		if length == 0 {
			*cursor = 0
		}
	}
	switch model.view {
	case ViewTickets:
		move(&model.ticketCursor, len(model.tickets))
	case ViewPayments:
		move(&model.paymentCursor, len(model.payments))
	case ViewQueue:
		move(&model.queueCursor, len(model.queue))
	}
}

// clampCursors pulls cursors back into range after a refetch shrinks
// a list.
func (model *Model) clampCursors() {
	clamp := func(cursor *int, length int) {
		if *cursor >= length {
			*cursor = length - 1
		}
		if *cursor < 0 {
			*cursor = 0
		}
	}
	clamp(&model.ticketCursor, len(model.tickets))
	clamp(&model.paymentCursor, len(model.payments))
	clamp(&model.queueCursor, len(model.queue))
}

// pageSize is the row count for page up/down movement.
func (model Model) pageSize() int {
	size := model.bodyHeight() - 1
	if size < 1 {
		return 1
	}
	return size
}

// resize recomputes component dimensions after a terminal resize.
func (model *Model) resize() {
	contentWidth := model.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}
	model.phoneInput.Width = 24
	model.subjectInput.Width = contentWidth
	model.chatInput.Width = contentWidth
	model.categoryInput.Width = 24
	model.statusInput.Width = 24
	model.textArea.SetWidth(contentWidth)
	model.textArea.SetHeight(6)
	model.commentArea.SetWidth(contentWidth)
	model.commentArea.SetHeight(4)

	bodyHeight := model.bodyHeight()
	model.chatViewport.Width = model.width
	model.chatViewport.Height = bodyHeight - 2 // Transcript above the input line.
	if model.chatViewport.Height < 1 {
		model.chatViewport.Height = 1
	}
	model.detailViewport.Width = model.width
	model.detailViewport.Height = bodyHeight
	if model.detailViewport.Height < 1 {
		model.detailViewport.Height = 1
	}
}

// bodyHeight is the vertical space between the tab bar and the status
// bar.
func (model Model) bodyHeight() int {
	height := model.height - 3 // Tab bar, separator, status bar.
	if height < 1 {
		return 1
	}
	return height
}

// refreshDetailViewport rebuilds the detail pane from the loaded
// history, comments, and generated response text.
func (model *Model) refreshDetailViewport() {
	model.detailViewport.SetContent(model.renderDetailContent())
}

// syncChatViewport rebuilds the transcript content and pins the
// viewport to the newest message.
func (model *Model) syncChatViewport() {
	model.chatViewport.SetContent(model.renderTranscript())
	model.chatViewport.GotoBottom()
}
