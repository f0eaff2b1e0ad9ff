// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package portalui implements the interactive terminal console for the
// support portal. Built on bubbletea (Elm architecture), it provides
// the full client journey — phone login, profile dashboard, tickets,
// payments, AI chat — plus the operator queue, behind a single
// tabbed [Model].
//
// The [Backend] interface decouples the console from the HTTP client:
// [portal.Client] implements it for real use, and tests substitute an
// in-memory fake. All backend calls run as tea.Cmd functions so the
// event loop never blocks on the network; each view refetches its data
// when the user navigates to it, so the console needs no cache
// invalidation.
//
// Data flow:
//
//	[support portal HTTP API]
//	        | (Backend interface)
//	    [Model] <- bubbletea event loop
//	        |
//	  [terminal output]
package portalui
