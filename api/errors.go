package api

import "errors"

// Package errors for the api channel and producer handle.
var (
	// ErrChannelClosed is returned by Send and Recv once either half of
	// a channel has been closed. It is surfaced to the caller and never
	// retried internally.
	ErrChannelClosed = errors.New("api: channel closed")

	// ErrImageDimensionsImmutable is returned when UpdateImage carries
	// pixel data whose length does not match the registered descriptor.
	// Changing dimensions or format through an update is unsupported.
	ErrImageDimensionsImmutable = errors.New("api: image update must preserve dimensions and format")

	// ErrEmptyDisplayList is returned when a display list with no items
	// is submitted.
	ErrEmptyDisplayList = errors.New("api: refusing to add empty display list")
)
