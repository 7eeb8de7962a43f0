package audit

import "time"

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	now   func() time.Time
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store, now: time.Now}
}

// Emit appends the event to the store, stamping it when no timestamp is set.
func (p *Publisher) Emit(base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = p.now()
	}
	return p.store.Append(base)
}

// List returns every stored event in append order.
func (p *Publisher) List() ([]Event, error) {
	return p.store.ListAll()
}

// ListBySubject returns the stored events about one field or operation.
func (p *Publisher) ListBySubject(subject string) ([]Event, error) {
	return p.store.ListBySubject(subject)
}

var _ Emitter = (*Publisher)(nil)
