// Package errors re-exports github.com/cockroachdb/errors so callers get
// stack traces, wrapping and user-facing hints from a single import.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

var (
	Is        = crdb.Is
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Join      = crdb.Join
)

// Sentinels, matched with Is after wrapping.
var (
	// ErrInvalidParams marks a rejected pipeline parameter bundle.
	ErrInvalidParams = New("invalid parameters")

	// ErrNotFound marks a lookup that found nothing.
	ErrNotFound = New("not found")

	// ErrNoData marks a request made before any dataset was loaded.
	ErrNoData = New("no dataset loaded")
)
