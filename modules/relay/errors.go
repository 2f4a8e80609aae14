package relay

import "errors"

// Routing outcomes. None of these are ever surfaced to the originating
// client; the relay degrades by dropping silently. They exist so the
// transport layer can log the drop instead of swallowing it.
var (
	// ErrUnknownRecipient means a private message or typing target was
	// not registered. The event produces zero deliveries.
	ErrUnknownRecipient = errors.New("recipient connection not registered")

	// ErrUnregisteredSender means an event arrived from a connection
	// with no joined profile. The event is processed with a zero-value
	// sender identity.
	ErrUnregisteredSender = errors.New("sender connection not registered")
)
