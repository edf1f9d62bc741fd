package provider

import (
	"encoding/json"
	"fmt"
	"time"
)

// Cursor kinds. Each provider category owns one typed variant; "opaque" is
// the escape hatch for categories added without a typed cursor.
const (
	CursorKindTranscript = "transcript"
	CursorKindMailbox    = "mailbox"
	CursorKindOpaque     = "opaque"
)

// Cursor is the incremental sync position of one provider, modeled as a
// tagged union so each provider validates its own shape at the boundary.
// The zero Cursor means "from the beginning".
type Cursor struct {
	Kind       string            `json:"kind,omitempty"`
	Transcript *TranscriptCursor `json:"transcript,omitempty"`
	Mailbox    *MailboxCursor    `json:"mailbox,omitempty"`
	Raw        json.RawMessage   `json:"raw,omitempty"`
}

type TranscriptCursor struct {
	LastSessionId string    `json:"last_session_id"`
	LastTimestamp time.Time `json:"last_timestamp"`
}

type MailboxCursor struct {
	LastMessageUid int64  `json:"last_message_uid"`
	Folder         string `json:"folder,omitempty"`
}

// IsZero reports whether the cursor is the initial position.
func (c Cursor) IsZero() bool {
	return c.Kind == "" && c.Transcript == nil && c.Mailbox == nil && len(c.Raw) == 0
}

// AsTranscript returns the transcript variant, tolerating the zero cursor.
func (c Cursor) AsTranscript() (*TranscriptCursor, error) {
	if c.IsZero() {
		return &TranscriptCursor{}, nil
	}
	if c.Kind != CursorKindTranscript || c.Transcript == nil {
		return nil, fmt.Errorf("cursor kind %q is not a transcript cursor", c.Kind)
	}
	return c.Transcript, nil
}

// AsMailbox returns the mailbox variant, tolerating the zero cursor.
func (c Cursor) AsMailbox() (*MailboxCursor, error) {
	if c.IsZero() {
		return &MailboxCursor{}, nil
	}
	if c.Kind != CursorKindMailbox || c.Mailbox == nil {
		return nil, fmt.Errorf("cursor kind %q is not a mailbox cursor", c.Kind)
	}
	return c.Mailbox, nil
}

// ParseCursor decodes a stored cursor blob. Unknown or malformed blobs come
// back as an opaque cursor rather than an error so a bad row cannot wedge
// a provider permanently.
func ParseCursor(data []byte) Cursor {
	if len(data) == 0 {
		return Cursor{}
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return Cursor{Kind: CursorKindOpaque, Raw: append(json.RawMessage{}, data...)}
	}
	return c
}
