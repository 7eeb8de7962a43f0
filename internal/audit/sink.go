package audit

//go:generate mockgen -source=sink.go -destination=mocks/sink_mock.go -package=mocks Sink

// Sink receives audit events on two independent channels.
type Sink interface {
	Success(event Event)
	Error(event Event)
}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Success(Event) {}
func (discard) Error(Event)   {}
