package engine

// Event is a multicast notification with no payload.
type Event struct {
	listeners []func()
}

// AddListener registers fn. Nil callbacks are ignored.
func (e *Event) AddListener(fn func()) {
	if fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls every listener in registration order.
func (e *Event) Invoke() {
	for _, l := range e.listeners {
		l()
	}
}

func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a multicast notification carrying one value.
type EventWithArg[T any] struct {
	listeners []func(T)
}

func (e *EventWithArg[T]) AddListener(fn func(T)) {
	if fn == nil {
		return
	}
	e.listeners = append(e.listeners, fn)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}
