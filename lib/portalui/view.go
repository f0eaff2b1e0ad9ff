// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/desk-foundation/desk/lib/portal"
)

// isBlank reports whether a form value is empty after trimming.
func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// View implements tea.Model. The whole frame is rebuilt from model
// state on every render; nothing is cached between frames.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	if model.view == ViewLogin {
		return model.renderLogin()
	}

	var body string
	switch model.view {
	case ViewDashboard:
		body = model.renderDashboard()
	case ViewTickets:
		body = model.renderTickets()
	case ViewPayments:
		body = model.renderPayments()
	case ViewChat:
		body = model.renderChat()
	case ViewQueue:
		body = model.renderQueue()
	case ViewQueueDetail:
		body = model.renderQueueDetail()
	}

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))

	sections := []string{
		model.renderHeader(),
		padToHeight(body, model.bodyHeight()),
		separator,
		model.renderStatusBar(),
	}
	return strings.Join(sections, "\n")
}

// padToHeight pads text with blank lines to exactly height lines so
// the status bar stays pinned to the bottom row.
func padToHeight(text string, height int) string {
	lines := strings.Split(text, "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderHeader draws the tab bar. The active tab renders in the
// header color; the operator tab only appears when enabled.
func (model Model) renderHeader() string {
	type tab struct {
		view  View
		label string
	}
	tabs := []tab{
		{ViewDashboard, "1:Профиль"},
		{ViewTickets, "2:Заявки"},
		{ViewPayments, "3:Платежи"},
		{ViewChat, "4:Чат"},
	}
	if model.operator {
		tabs = append(tabs, tab{ViewQueue, "5:Оператор"})
	}

	active := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	parts := make([]string, 0, len(tabs))
	for _, entry := range tabs {
		style := inactive
		if entry.view == model.view ||
			(entry.view == ViewQueue && model.view == ViewQueueDetail) {
			style = active
		}
		parts = append(parts, style.Render(entry.label))
	}
	return strings.Join(parts, "  ")
}

// renderStatusBar draws the bottom line: spinner while calls are in
// flight, then error or notice feedback, then the key hints.
func (model Model) renderStatusBar() string {
	var left string
	switch {
	case model.inflight > 0:
		left = model.spinner.View() + " Загрузка..."
	case model.errorText != "":
		left = lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(model.errorText)
	case model.notice != "":
		left = lipgloss.NewStyle().Foreground(model.theme.NoticeText).Render(model.notice)
	}

	help := lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(model.helpText())
	if left == "" {
		return help
	}
	gap := model.width - ansi.StringWidth(left) - ansi.StringWidth(help)
	if gap < 2 {
		return left
	}
	return left + strings.Repeat(" ", gap) + help
}

// helpText returns the key hints for the current screen state.
func (model Model) helpText() string {
	if model.activeForm != formNone {
		return "Tab поля · C-d отправить · Esc отмена"
	}
	switch model.view {
	case ViewTickets:
		return "j/k строки · n новая заявка · r обновить · q выход"
	case ViewChat:
		return "Enter отправить · Esc вкладки · q выход"
	case ViewQueue:
		return "j/k строки · Enter открыть · f фильтр · r обновить · q выход"
	case ViewQueueDetail:
		return "c комментарий · s отправить ответ · Esc назад · q выход"
	default:
		return "1-5 вкладки · r обновить · L выйти из аккаунта · q выход"
	}
}

// renderLogin draws the standalone phone entry screen.
func (model Model) renderLogin() string {
	title := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render("Вход в личный кабинет")
	prompt := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render("Введите номер телефона и нажмите Enter")

	var feedback string
	switch {
	case model.inflight > 0:
		feedback = model.spinner.View() + " Проверяем номер..."
	case model.errorText != "":
		feedback = lipgloss.NewStyle().Foreground(model.theme.ErrorText).Render(model.errorText)
	}

	box := strings.Join([]string{title, "", prompt, "", model.phoneInput.View(), "", feedback}, "\n")
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, box)
}

// renderDashboard draws the profile screen.
func (model Model) renderDashboard() string {
	if model.user == nil {
		return faint(model.theme, "Профиль ещё не загружен")
	}
	user := model.user

	label := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(16)
	value := lipgloss.NewStyle().Foreground(model.theme.NormalText)

	row := func(name, content string) string {
		return label.Render(name) + value.Render(content)
	}
	return strings.Join([]string{
		row("ФИО", portal.OrPlaceholder(user.FullName)),
		row("Телефон", user.Phone),
		row("Тариф", portal.OrPlaceholder(user.Tariff)),
		row("Услуги", user.Services.String()),
		row("Баланс", fmt.Sprintf("%s ₽", user.Balance)),
		row("Задолженность", fmt.Sprintf("%s ₽", user.Debt)),
	}, "\n")
}

// renderTickets draws the client ticket table, with the creation form
// below it when active.
func (model Model) renderTickets() string {
	table := model.renderTicketTable(model.tickets, model.ticketCursor, false)
	if model.activeForm != formNewTicket {
		return table
	}

	formTitle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Render("Новая заявка")
	form := strings.Join([]string{
		formTitle,
		model.subjectInput.View(),
		model.textArea.View(),
	}, "\n")
	return table + "\n\n" + form
}

// renderPayments draws the payment history table.
func (model Model) renderPayments() string {
	if len(model.payments) == 0 {
		return faint(model.theme, "Платежей пока нет")
	}

	widths := model.columnWidths([]int{12, 12, 0, 14})
	rows := []string{model.headerRow([]string{"Дата", "Сумма", "Услуга", "Статус"}, widths)}
	for i, payment := range model.payments {
		cells := []string{
			portal.FormatDate(payment.Date),
			fmt.Sprintf("%s ₽", payment.Amount),
			portal.OrPlaceholder(payment.Service),
			payment.Status,
		}
		rows = append(rows, model.dataRow(cells, widths, i == model.paymentCursor, ""))
	}
	return strings.Join(rows, "\n")
}

// renderChat draws the transcript viewport with the input line below.
func (model Model) renderChat() string {
	input := model.chatInput.View()
	return model.chatViewport.View() + "\n\n" + input
}

// renderTranscript renders the chat history for the viewport.
func (model Model) renderTranscript() string {
	if len(model.transcript) == 0 {
		return faint(model.theme, "Задайте вопрос — ассистент знает ваш тариф, заявки и платежи")
	}

	userStyle := lipgloss.NewStyle().Foreground(model.theme.UserMessage).Bold(true)
	assistantStyle := lipgloss.NewStyle().Foreground(model.theme.AssistantMessage)
	pendingStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Italic(true)

	width := model.width - 4
	if width < 20 {
		width = 20
	}
	wrap := lipgloss.NewStyle().Width(width)

	var lines []string
	for _, entry := range model.transcript {
		switch {
		case entry.fromUser:
			lines = append(lines, userStyle.Render("Вы: ")+wrap.Render(entry.text))
		case entry.pending:
			lines = append(lines, pendingStyle.Render(entry.text))
		default:
			lines = append(lines, assistantStyle.Render("Ассистент: ")+wrap.Render(entry.text))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderQueue draws the operator queue table, with the active filters
// above it and the filter form below when open.
func (model Model) renderQueue() string {
	var parts []string
	if model.queueCategory != "" || model.queueStatus != "" {
		parts = append(parts, faint(model.theme, fmt.Sprintf(
			"Фильтр: категория=%s статус=%s",
			portal.OrPlaceholder(model.queueCategory),
			portal.OrPlaceholder(model.queueStatus))), "")
	}
	parts = append(parts, model.renderTicketTable(model.queue, model.queueCursor, true))

	if model.activeForm == formQueueFilter {
		formTitle := lipgloss.NewStyle().
			Foreground(model.theme.HeaderForeground).
			Render("Фильтр очереди")
		parts = append(parts, "", formTitle,
			model.categoryInput.View(),
			model.statusInput.View())
	}
	return strings.Join(parts, "\n")
}

// renderQueueDetail draws one queue ticket: a short header, the
// scrollable history+comments viewport, and the comment form when
// active.
func (model Model) renderQueueDetail() string {
	var header string
	if ticket := model.detailTicket; ticket != nil {
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.StatusColor(ticket.Status))
		header = fmt.Sprintf("Заявка №%d · %s · %s",
			ticket.ID,
			portal.OrPlaceholder(ticket.Subject),
			statusStyle.Render(ticket.Status))
	}

	body := model.detailViewport.View()
	if !model.detailLoaded {
		body = faint(model.theme, "Загрузка заявки...")
	}

	if model.activeForm == formComment {
		return header + "\n" + body + "\n" + model.commentArea.View()
	}
	return header + "\n" + body
}

// renderDetailContent builds the viewport content for the open
// operator ticket: the ticket text, the generated response, the raw
// client history document, and the comment thread.
func (model Model) renderDetailContent() string {
	section := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var parts []string
	if ticket := model.detailTicket; ticket != nil && ticket.Text != "" {
		parts = append(parts, section.Render("Описание"), ticket.Text, "")
	}

	response := model.detailResponse
	if response == "" && model.detailTicket != nil {
		response = model.detailTicket.AIResponse
	}
	if response != "" {
		parts = append(parts, section.Render("Ответ поддержки"), response, "")
	}

	parts = append(parts, section.Render("История клиента"))
	var indented bytes.Buffer
	if err := json.Indent(&indented, model.detailHistory, "", "  "); err == nil {
		parts = append(parts, indented.String())
	} else {
		parts = append(parts, string(model.detailHistory))
	}
	parts = append(parts, "")

	parts = append(parts, section.Render("Комментарии"))
	if len(model.detailComments) == 0 {
		parts = append(parts, faintStyle.Render("Комментариев нет"))
	}
	for _, comment := range model.detailComments {
		meta := faintStyle.Render(fmt.Sprintf("[%s] %s",
			portal.FormatTimestamp(comment.CreatedAt), comment.Author))
		parts = append(parts, meta, comment.Text, "")
	}
	return strings.Join(parts, "\n")
}

// renderTicketTable renders tickets as rows. The operator form adds
// the assignee and client phone columns.
func (model Model) renderTicketTable(tickets []portal.Ticket, cursor int, operator bool) string {
	if len(tickets) == 0 {
		if operator {
			return faint(model.theme, "Очередь пуста")
		}
		return faint(model.theme, "Заявок пока нет — нажмите n, чтобы создать")
	}

	headers := []string{"№", "Тема", "Категория", "Статус", "Создана"}
	layout := []int{6, 0, 14, 14, 18}
	if operator {
		headers = []string{"№", "Тема", "Категория", "Статус", "Исполнитель", "Клиент", "Создана"}
		layout = []int{6, 0, 14, 14, 14, 14, 18}
	}

	widths := model.columnWidths(layout)
	rows := []string{model.headerRow(headers, widths)}
	for i, ticket := range tickets {
		cells := []string{
			fmt.Sprintf("%d", ticket.ID),
			portal.OrPlaceholder(ticket.Subject),
			portal.OrPlaceholder(ticket.Category),
			ticket.Status,
		}
		if operator {
			cells = append(cells,
				portal.OrPlaceholder(ticket.AssignedTo),
				portal.OrPlaceholder(ticket.ClientPhone))
		}
		cells = append(cells, portal.FormatTimestamp(ticket.CreatedAt))
		rows = append(rows, model.dataRow(cells, widths, i == cursor, ticket.Status))
	}
	return strings.Join(rows, "\n")
}

// columnWidths resolves a column layout against the terminal width.
// Exactly one entry is 0: the flexible column that absorbs whatever
// space the fixed columns leave over.
func (model Model) columnWidths(layout []int) []int {
	fixed := 0
	for _, width := range layout {
		fixed += width
	}
	flexible := model.width - fixed - 2*(len(layout)-1)
	if flexible < 8 {
		flexible = 8
	}
	widths := make([]int, len(layout))
	for i, width := range layout {
		if width == 0 {
			widths[i] = flexible
		} else {
			widths[i] = width
		}
	}
	return widths
}

// headerRow renders the column header line.
func (model Model) headerRow(headers []string, widths []int) string {
	style := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = padCell(header, widths[i])
	}
	return style.Render(strings.Join(cells, "  "))
}

// dataRow renders one table row. The selected row gets the selection
// background; otherwise the status cell is tinted by status.
func (model Model) dataRow(cells []string, widths []int, selected bool, status string) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = padCell(cell, widths[i])
	}
	row := strings.Join(padded, "  ")

	if selected {
		return lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground).
			Render(row)
	}
	if status != "" {
		return lipgloss.NewStyle().Foreground(model.theme.StatusColor(status)).Render(row)
	}
	return lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(row)
}

// padCell truncates or pads a cell to exactly width columns. Uses
// display width, not byte length, so Cyrillic and wide runes align.
func padCell(text string, width int) string {
	text = ansi.Truncate(text, width, "…")
	gap := width - ansi.StringWidth(text)
	if gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return text
}

// faint renders placeholder text in the faint style.
func faint(theme Theme, text string) string {
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(text)
}
