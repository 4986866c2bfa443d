package domain

type Message struct {
	Key   []byte
	Value []byte
}

// PublisherPort delivers domain events to interested collaborators.
// Delivery is best-effort: publish failures never fail the operation that
// produced the event.
type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}
