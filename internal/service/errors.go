package service

import "errors"

var (
	// ErrItemNotFound is returned when an operation targets a settle item
	// that no longer exists. Approving a correction against a deleted item
	// fails with this error and leaves the pending record in place.
	ErrItemNotFound = errors.New("settle item not found")

	// ErrCorrectionNotFound is returned when a pending correction id does
	// not resolve.
	ErrCorrectionNotFound = errors.New("pending correction not found")

	// ErrEmptyCorrection is returned when a proposed correction carries no
	// amount, or a zero one.
	ErrEmptyCorrection = errors.New("correction must change the amount to a non-zero value")

	// ErrBlockNotCorrectable is returned when a correction targets a block
	// item; block amounts come from the daily feed and are never corrected.
	ErrBlockNotCorrectable = errors.New("block items are not correctable")

	// ErrUnrelatedCorrection is returned when the proposing counterparty has
	// no name relevance to the target item. Amount-only similarity is not
	// enough to suggest a correction.
	ErrUnrelatedCorrection = errors.New("counterparty is unrelated to the target item")
)
