package race

type EventType int

const (
	EventLevelStarted EventType = iota
	EventLevelAdvanced
	EventBounced
	EventWaypointReached
	EventLost
	EventWon
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventLevelStarted:
		return "level-started"
	case EventLevelAdvanced:
		return "level-advanced"
	case EventBounced:
		return "bounced"
	case EventWaypointReached:
		return "waypoint-reached"
	case EventLost:
		return "lost"
	case EventWon:
		return "won"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Level int
	X, Y  float64
	Data  int // Generic payload (e.g. waypoint index).
}

type EventHandler func(Event)

// EventBus dispatches synchronously on the race loop's goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventLevelStarted; t <= EventReset; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
