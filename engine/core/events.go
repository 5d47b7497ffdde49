package core

import (
	"fmt"

	"github.com/spaghettifunk/arpuzzle/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// A marker became visible this frame.
	/* Context usage:
	 * marker := data.Data.(*MarkerEvent)
	 */
	EVENT_CODE_MARKER_FOUND EventCode = 0x02

	// A marker that was visible last frame is gone.
	/* Context usage:
	 * marker := data.Data.(*MarkerEvent)
	 */
	EVENT_CODE_MARKER_LOST EventCode = 0x03

	// Both objects matched their reference transforms this frame,
	// after not matching the frame before.
	/* Context usage:
	 * level := data.Data.(*LevelEvent)
	 */
	EVENT_CODE_LEVEL_MATCHED EventCode = 0x04

	// The player has won the current level.
	/* Context usage:
	 * level := data.Data.(*LevelEvent)
	 */
	EVENT_CODE_LEVEL_WON EventCode = 0x05

	// A level was (re)initialised, either by switching or by reset.
	/* Context usage:
	 * level := data.Data.(*LevelEvent)
	 */
	EVENT_CODE_LEVEL_SWITCHED EventCode = 0x06

	// Difficulty toggled.
	/* Context usage:
	 * level := data.Data.(*LevelEvent)
	 */
	EVENT_CODE_DIFFICULTY_CHANGED EventCode = 0x07

	MAX_EVENT_CODE EventCode = 0xFF
)

func (c EventCode) String() string {
	switch c {
	case EVENT_CODE_APPLICATION_QUIT:
		return "application_quit"
	case EVENT_CODE_MARKER_FOUND:
		return "marker_found"
	case EVENT_CODE_MARKER_LOST:
		return "marker_lost"
	case EVENT_CODE_LEVEL_MATCHED:
		return "level_matched"
	case EVENT_CODE_LEVEL_WON:
		return "level_won"
	case EVENT_CODE_LEVEL_SWITCHED:
		return "level_switched"
	case EVENT_CODE_DIFFICULTY_CHANGED:
		return "difficulty_changed"
	default:
		return fmt.Sprintf("event_%d", uint16(c))
	}
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

type MarkerEvent struct {
	// Slot of the object bound to the marker (0 is the origin marker).
	Slot   int
	Marker int
}

type LevelEvent struct {
	LevelID    int
	Difficulty string
}

// Should return true if handled.
type FnOnEvent func(context EventContext) bool

// Queue capacity for events fired during a single frame.
const MAX_QUEUED_EVENTS = 256

type eventCodeEntry struct {
	callbacks []FnOnEvent
}

// EventSystem dispatches events to registered listeners. Events fired during
// a frame are queued and delivered by Process, so listeners never observe a
// half-updated frame.
type EventSystem struct {
	registered [MAX_EVENT_CODE + 1]eventCodeEntry
	queue      *containers.RingQueue[EventContext]
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		queue: containers.NewRingQueue[EventContext](MAX_QUEUED_EVENTS),
	}
}

/**
 * Register to listen for when events are sent with the provided code.
 * @param code The event code to listen for.
 * @param onEvent The callback function to be invoked when the event code is fired.
 * @returns true if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code EventCode, onEvent FnOnEvent) bool {
	if code > MAX_EVENT_CODE || onEvent == nil {
		return false
	}
	es.registered[code].callbacks = append(es.registered[code].callbacks, onEvent)
	return true
}

// Unregister removes every listener for the given code.
func (es *EventSystem) Unregister(code EventCode) bool {
	if code > MAX_EVENT_CODE || len(es.registered[code].callbacks) == 0 {
		return false
	}
	es.registered[code].callbacks = nil
	return true
}

// Fire queues the event for delivery on the next Process call.
func (es *EventSystem) Fire(context EventContext) error {
	if context.Type > MAX_EVENT_CODE {
		return fmt.Errorf("event code %d out of range", context.Type)
	}
	if err := es.queue.Enqueue(context); err != nil {
		return fmt.Errorf("failed to queue event %s: %w", context.Type, err)
	}
	return nil
}

/**
 * Delivers queued events in firing order. If an event handler returns
 * true, the event is considered handled and is not passed on to any more
 * listeners.
 * @returns the number of events delivered.
 */
func (es *EventSystem) Process() int {
	// listeners may fire new events; those wait for the next frame
	pending := es.queue.Drain()
	for _, context := range pending {
		es.dispatch(context)
	}
	return len(pending)
}

func (es *EventSystem) dispatch(context EventContext) bool {
	for _, cb := range es.registered[context.Type].callbacks {
		if cb(context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
