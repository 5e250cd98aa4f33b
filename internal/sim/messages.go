package sim

import "fmt"

// MaxMessages is the length of the message log.
const MaxMessages = 50

// MsgKind picks the color a message is drawn in.
type MsgKind uint8

const (
	MsgInfo MsgKind = iota
	MsgGood
	MsgWarn
	MsgBad
	MsgGold
)

// Message is one line of the message log.
type Message struct {
	Text string  `json:"text" msgpack:"text"`
	Kind MsgKind `json:"kind" msgpack:"kind"`
}

func (s *Session) addMessage(kind MsgKind, format string, args ...any) {
	s.messages = append(s.messages, Message{Text: fmt.Sprintf(format, args...), Kind: kind})
	if len(s.messages) > MaxMessages {
		s.messages = s.messages[len(s.messages)-MaxMessages:]
	}
}

// Messages returns the log, oldest first.
func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}
