package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Well-known metadata keys interpreted by the engine and the built-in node
// kinds. Metadata is otherwise open-ended; callers may attach arbitrary keys.
const (
	// MetaInResponseTo links a message to the id of the message it answers.
	// Set by CreateResponse and consulted by IsResponseTo.
	MetaInResponseTo = "in_response_to"

	// MetaError carries the failure description when an agent converts an
	// internal error into an error-content response.
	MetaError = "error"

	// MetaToolResult marks a message produced by a tool invocation.
	MetaToolResult = "tool_result"

	// MetaToolName names the tool that produced a tool-result message.
	MetaToolName = "tool_name"
)

// Message is the unit of communication between nodes. After construction it
// must be treated as immutable: executors and the engine never modify a
// message in place, they derive new ones (typically via CreateResponse).
//
// The zero value is not a valid message; use NewMessage.
type Message struct {
	ID        string         `json:"id"`
	Sender    string         `json:"sender"`
	Recipient string         `json:"recipient"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// MessageOptions configures optional Message fields. ID and Timestamp are
// generated when left unset; Metadata is copied defensively.
type MessageOptions struct {
	ID        string
	Timestamp time.Time
	Metadata  map[string]any
}

// NewMessage constructs a message from sender to recipient. A unique id and a
// UTC creation timestamp are generated unless supplied via options.
func NewMessage(sender, recipient, content string, optFns ...func(o *MessageOptions)) Message {
	opts := MessageOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.ID == "" {
		opts.ID = NewID()
	}
	if opts.Timestamp.IsZero() {
		opts.Timestamp = time.Now().UTC()
	}

	return Message{
		ID:        opts.ID,
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Metadata:  copyMetadata(opts.Metadata),
		Timestamp: opts.Timestamp,
	}
}

// NewID generates a unique identifier for messages and runs.
func NewID() string { return uuid.NewString() }

// CreateResponse derives a reply to this message: sender and recipient are
// swapped and the MetaInResponseTo key is set to this message's id. Extra
// metadata entries are merged into the response (the causal link wins on
// key collision).
func (m Message) CreateResponse(content string, metadata map[string]any) Message {
	md := copyMetadata(metadata)
	if md == nil {
		md = make(map[string]any, 1)
	}
	md[MetaInResponseTo] = m.ID

	return NewMessage(m.Recipient, m.Sender, content, func(o *MessageOptions) {
		o.Metadata = md
	})
}

// IsResponseTo reports whether this message is a direct response to other:
// endpoints must be swapped and the causal metadata link must reference
// other's id.
func (m Message) IsResponseTo(other Message) bool {
	if m.Recipient != other.Sender || m.Sender != other.Recipient {
		return false
	}
	v, ok := m.Metadata[MetaInResponseTo]
	if !ok {
		return false
	}
	id, ok := v.(string)
	return ok && id == other.ID
}

// Meta returns the metadata value for key and whether it is present.
func (m Message) Meta(key string) (any, bool) {
	v, ok := m.Metadata[key]
	return v, ok
}

// ToRecord serializes the message into a plain map suitable for structured
// logging sinks or external persistence. Timestamps are rendered as
// RFC 3339 nano strings so records survive a JSON round trip.
func (m Message) ToRecord() map[string]any {
	rec := map[string]any{
		"id":        m.ID,
		"sender":    m.Sender,
		"recipient": m.Recipient,
		"content":   m.Content,
		"timestamp": m.Timestamp.Format(time.RFC3339Nano),
	}
	if len(m.Metadata) > 0 {
		rec["metadata"] = copyMetadata(m.Metadata)
	}
	return rec
}

// FromRecord reconstructs a message from a record produced by ToRecord.
// The timestamp may be an RFC 3339 string or a native time.Time.
func FromRecord(rec map[string]any) (Message, error) {
	msg := Message{}

	var ok bool
	if msg.ID, ok = rec["id"].(string); !ok || msg.ID == "" {
		return Message{}, fmt.Errorf("message record: missing or invalid id")
	}
	msg.Sender, _ = rec["sender"].(string)
	msg.Recipient, _ = rec["recipient"].(string)
	msg.Content, _ = rec["content"].(string)

	switch ts := rec["timestamp"].(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return Message{}, fmt.Errorf("message record: invalid timestamp %q: %w", ts, err)
		}
		msg.Timestamp = t
	case time.Time:
		msg.Timestamp = ts
	default:
		return Message{}, fmt.Errorf("message record: missing timestamp")
	}

	if md, ok := rec["metadata"].(map[string]any); ok {
		msg.Metadata = copyMetadata(md)
	}

	return msg, nil
}

func copyMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	cp := make(map[string]any, len(md))
	for k, v := range md {
		cp[k] = v
	}
	return cp
}
