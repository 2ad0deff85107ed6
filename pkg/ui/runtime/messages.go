package runtime

// Message is a notification sent from the UI to the host program.
type Message interface {
	isMessage()
}

// QuitMessage tells the host that the loop has shut down.
type QuitMessage struct{}

func (QuitMessage) isMessage() {}

// TextMessage carries text submitted from the UI.
type TextMessage struct {
	Text string
}

func (TextMessage) isMessage() {}

// Sender is the send half of a queue. Components and tasks hold senders,
// never the queue itself.
type Sender[T any] interface {
	Send(T) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc[T any] func(T) error

func (f SenderFunc[T]) Send(v T) error { return f(v) }
