// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Ticket status colors.
	StatusNew        lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar feedback.
	ErrorText  lipgloss.Color
	NoticeText lipgloss.Color

	// Chat transcript roles.
	UserMessage      lipgloss.Color
	AssistantMessage lipgloss.Color
}

// StatusColor returns the color for a ticket status string. Unknown
// values render in FaintText.
func (theme Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "new", "open":
		return theme.StatusNew
	case "in_progress":
		return theme.StatusInProgress
	case "resolved":
		return theme.StatusResolved
	case "closed":
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusNew:        lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusResolved:   lipgloss.Color("141"), // light purple
	StatusClosed:     lipgloss.Color("245"), // gray

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:  lipgloss.Color("196"), // red
	NoticeText: lipgloss.Color("114"), // green

	UserMessage:      lipgloss.Color("75"),  // blue
	AssistantMessage: lipgloss.Color("252"), // same as NormalText
}
