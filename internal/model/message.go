package model

import "time"

// Message is a single mail message as fetched from the provider.
// A message is immutable once fetched and is replaced wholesale on
// refresh; the Read flag is the one exception, and it is transient
// session state that is never written back to the provider.
type Message struct {
	// ID is the unique identifier for this message, stable for the
	// lifetime of the session (typically the Message-ID header).
	ID string

	// From is the sender display name or address.
	From string

	// Subject is the message subject line.
	Subject string

	// Received is when the message arrived.
	Received time.Time

	// Body is the plain-text message body.
	Body string

	// Read reports whether the message has been opened in this session.
	Read bool
}
