package core

import (
	"strings"
	"time"
)

// RawItem is a unit of source data assembled by the upstream ingestion
// layer. The extraction orchestrator resolves strategies by Origin and the
// ledger tracks items by Fingerprint.
type RawItem interface {
	Origin() Origin
	Fingerprint() ID
}

// Message is a single message in a conversation thread.
type Message struct {
	Text      string
	Author    string
	Timestamp time.Time
	Permalink string
}

// Thread is an ordered conversation thread fetched from a chat service.
type Thread struct {
	Channel  string
	ThreadID string
	Messages []Message
}

// Origin implements RawItem.
func (t *Thread) Origin() Origin { return OriginThread }

// Fingerprint implements RawItem. The hash covers the channel, thread id
// and every message body, so an edited or extended thread gets a new
// fingerprint.
func (t *Thread) Fingerprint() ID {
	var sb strings.Builder
	sb.WriteString("thread\x00")
	sb.WriteString(t.Channel)
	sb.WriteString("\x00")
	sb.WriteString(t.ThreadID)
	for _, m := range t.Messages {
		sb.WriteString("\x00")
		sb.WriteString(m.Text)
	}
	return IDFromContent(sb.String())
}

// Text returns the concatenated message bodies of the thread.
func (t *Thread) Text() string {
	parts := make([]string, 0, len(t.Messages))
	for _, m := range t.Messages {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n")
}

// DocumentSection is a titled section of a wiki-style document.
type DocumentSection struct {
	DocumentID    string
	DocumentTitle string
	SectionTitle  string
	Content       []string
}

// Origin implements RawItem.
func (s *DocumentSection) Origin() Origin { return OriginDocumentSection }

// Fingerprint implements RawItem.
func (s *DocumentSection) Fingerprint() ID {
	var sb strings.Builder
	sb.WriteString("section\x00")
	sb.WriteString(s.DocumentID)
	sb.WriteString("\x00")
	sb.WriteString(s.SectionTitle)
	for _, block := range s.Content {
		sb.WriteString("\x00")
		sb.WriteString(block)
	}
	return IDFromContent(sb.String())
}

// Text returns the section body as a single string.
func (s *DocumentSection) Text() string {
	return strings.Join(s.Content, " ")
}
