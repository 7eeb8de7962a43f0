package audit

// Store persists audit events in append order.
type Store interface {
	Append(event Event) error
	ListAll() ([]Event, error)
	ListBySubject(subject string) ([]Event, error)
}
