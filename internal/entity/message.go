package entity

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a transient status line shown after a mutating operation and
// auto-dismissed after a fixed interval.
type Message struct {
	Text string      `json:"text"`
	Kind MessageKind `json:"kind"`
}
