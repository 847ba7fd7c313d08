package game

type EventType int

const (
	EventStateChanged EventType = iota
	EventCrash
	EventBoost
	EventBoostEnded
	EventTurn
)

type Event struct {
	Type  EventType
	Cycle int // index into Controller.Cycles; -1 for session events
	X, Y  float64
	State State // new state for EventStateChanged
}

type EventHandler func(Event)

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

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
