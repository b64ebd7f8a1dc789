// Package ui provides shared UI constants and utilities.
package ui

import "time"

// Layout constants for consistent sizing across UI components.
const (
	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the shell header row plus its separator.
	HeaderHeight = 2

	// ProgressHeight is the row reserved for the navigation progress bar.
	ProgressHeight = 1

	// FooterHeight is the help footer row.
	FooterHeight = 1

	// ShellOverhead is the vertical space the shell takes around the outlet.
	ShellOverhead = HeaderHeight + ProgressHeight + FooterHeight

	// CardPaddingX and CardPaddingY are a card's default inner padding.
	CardPaddingX = 2
	CardPaddingY = 1

	// MinCardWidth keeps a card readable on narrow terminals.
	MinCardWidth = 24

	// MaxPageWidth caps the width of centered status pages.
	MaxPageWidth = 72

	// DetailsHeight is the visible height of an error details box.
	DetailsHeight = 8
)

// CopiedFeedback is how long a copy button shows its acknowledgement.
const CopiedFeedback = 1500 * time.Millisecond
