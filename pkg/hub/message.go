// Package hub provides a channel-based websocket broadcast hub. The
// dashboard uses one hub per stream: JSON session status updates and
// binary overlay frames.
package hub

// MessageType indicates the websocket message format.
type MessageType int

const (
	// JSONMessage is a JSON-encoded message, used for status updates.
	JSONMessage MessageType = iota
	// BinaryMessage is raw binary data, used for JPEG overlay frames.
	BinaryMessage
)

// Message is a payload to be broadcast to every connected client.
type Message struct {
	Type MessageType
	Data []byte
}

// NewJSONMessage creates a JSON message from pre-encoded bytes.
func NewJSONMessage(data []byte) Message {
	return Message{Type: JSONMessage, Data: data}
}

// NewBinaryMessage creates a binary message.
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}
