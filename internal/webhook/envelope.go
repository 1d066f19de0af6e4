package webhook

// Envelope is the WhatsApp Cloud API webhook delivery payload.
// Only the fields the bot reads are modeled; the platform sends the
// same envelope for message deliveries and status-only notifications.
type Envelope struct {
	Entry []Entry `json:"entry"`
}

// Entry is one account-level notification batch.
type Entry struct {
	Changes []Change `json:"changes"`
}

// Change is one field change inside an entry.
type Change struct {
	Value Value `json:"value"`
}

// Value carries the messages array when the change is a message delivery.
// Status notifications omit it.
type Value struct {
	Messages []Message `json:"messages"`
}

// Message is one inbound message.
type Message struct {
	From string      `json:"from"`
	Text TextContent `json:"text"`
}

// TextContent is the body of a text message.
type TextContent struct {
	Body string `json:"body"`
}

// FirstMessage returns the first message of the first change of the first
// entry, mirroring the envelope path the platform documents for single
// message deliveries. Returns false when any level is absent.
func (e *Envelope) FirstMessage() (Message, bool) {
	if len(e.Entry) == 0 || len(e.Entry[0].Changes) == 0 {
		return Message{}, false
	}
	messages := e.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return Message{}, false
	}
	return messages[0], true
}
