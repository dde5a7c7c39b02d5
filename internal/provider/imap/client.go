// Package imap implements the mail provider against an IMAP server
// using go-imap v2.
package imap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/provider"
)

// Config holds the IMAP connection parameters.
type Config struct {
	Server   string
	Port     string
	Email    string
	Password string
	Mailbox  string
	TLS      bool
}

// Provider fetches the current mailbox snapshot over IMAP. Each Fetch
// opens a fresh connection; the session holds no connection state.
type Provider struct {
	cfg Config
	now func() time.Time
}

// New creates an IMAP provider.
func New(cfg Config) *Provider {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Provider{cfg: cfg, now: time.Now}
}

// Fetch connects, selects the configured mailbox, and returns every
// message received in the current calendar quarter.
func (p *Provider) Fetch(ctx context.Context) ([]model.Message, error) {
	client, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select(p.cfg.Mailbox, nil).Wait(); err != nil {
		return nil, &provider.FetchError{
			Kind:    provider.KindMalformed,
			Message: fmt.Sprintf("selecting %s", p.cfg.Mailbox),
			Err:     err,
		}
	}

	since, _ := provider.QuarterRange(p.now())
	searchData, err := client.UIDSearch(&imap.SearchCriteria{
		Since: since,
	}, nil).Wait()
	if err != nil {
		return nil, &provider.FetchError{
			Kind:    provider.KindMalformed,
			Message: "searching messages",
			Err:     err,
		}
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		Envelope:    true,
		Flags:       true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var messages []model.Message
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		messages = append(messages, messageFromBuffer(buf, bodySection))
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, &provider.FetchError{
			Kind:    provider.KindMalformed,
			Message: "fetching messages",
			Err:     err,
		}
	}

	return messages, nil
}

// connect dials the server and authenticates.
func (p *Provider) connect(_ context.Context) (*imapclient.Client, error) {
	addr := p.cfg.Server + ":" + p.cfg.Port

	var client *imapclient.Client
	var err error
	if p.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, &provider.FetchError{
			Kind:    provider.KindUnreachable,
			Message: fmt.Sprintf("connecting to %s", addr),
			Err:     err,
		}
	}

	if err := client.Login(p.cfg.Email, p.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &provider.FetchError{
			Kind:    provider.KindAuth,
			Message: fmt.Sprintf("login rejected for %s", p.cfg.Email),
			Err:     err,
		}
	}

	return client, nil
}

// messageFromBuffer builds a Message from a fetched IMAP buffer.
// Messages without a Message-ID header get a generated identifier so
// the ID stays unique for the session.
func messageFromBuffer(
	buf *imapclient.FetchMessageBuffer,
	bodySection *imap.FetchItemBodySection,
) model.Message {
	m := model.Message{ID: uuid.NewString()}

	if buf.Envelope != nil {
		if buf.Envelope.MessageID != "" {
			m.ID = buf.Envelope.MessageID
		}
		m.Subject = buf.Envelope.Subject
		m.Received = buf.Envelope.Date

		if len(buf.Envelope.From) > 0 {
			from := buf.Envelope.From[0]
			if from.Name != "" {
				m.From = from.Name
			} else {
				m.From = from.Addr()
			}
		}
	}

	for _, flag := range buf.Flags {
		if flag == imap.FlagSeen {
			m.Read = true
		}
	}

	if raw := buf.FindBodySection(bodySection); raw != nil {
		m.Body = textBody(raw)
	}

	return m
}

// textBody parses a raw RFC 2822 body with go-message and extracts the
// text/plain part, falling back to stripped HTML, then to the raw bytes.
func textBody(raw []byte) string {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return string(raw)
	}
	defer mr.Close()

	var plain, html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		body, readErr := io.ReadAll(part.Body)
		if readErr != nil {
			continue
		}

		switch {
		case strings.HasPrefix(contentType, "text/plain"):
			plain = string(body)
		case strings.HasPrefix(contentType, "text/html"):
			html = string(body)
		}
	}

	if plain != "" {
		return plain
	}
	if html != "" {
		return html
	}
	return string(raw)
}
