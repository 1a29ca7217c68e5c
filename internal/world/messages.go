package world

const messageLogSize = 40

// MessageKind tags a player-facing message for colouring.
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageSuccess
	MessageDenied
)

// Message is a single line shown to the player.
type Message struct {
	Date Clock
	Kind MessageKind
	Text string
}

// MessageLog is a ring buffer of player-facing messages.
type MessageLog struct {
	entries []Message
	head    int
	count   int
}

// NewMessageLog creates a message log with a fixed capacity.
func NewMessageLog() *MessageLog {
	return &MessageLog{entries: make([]Message, messageLogSize)}
}

// Add appends a message, overwriting the oldest when full.
func (ml *MessageLog) Add(date Clock, kind MessageKind, text string) {
	ml.entries[ml.head] = Message{Date: date, Kind: kind, Text: text}
	ml.head = (ml.head + 1) % messageLogSize
	if ml.count < messageLogSize {
		ml.count++
	}
}

// Recent returns messages in chronological order (oldest first).
func (ml *MessageLog) Recent() []Message {
	result := make([]Message, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + messageLogSize) % messageLogSize
		result[i] = ml.entries[idx]
	}
	return result
}

// Last returns the newest message.
func (ml *MessageLog) Last() (Message, bool) {
	if ml.count == 0 {
		return Message{}, false
	}
	return ml.entries[(ml.head-1+messageLogSize)%messageLogSize], true
}

// Len returns how many messages are held.
func (ml *MessageLog) Len() int { return ml.count }
