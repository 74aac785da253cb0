package sim

import (
	"container/heap"
	"time"
)

// EventKind selects the effect of a scheduled event.
type EventKind int

const (
	EventShieldDown      EventKind = iota // Enemy shield window closes
	EventInvulnerableEnd                  // Player invulnerability ends
	EventSpecialEnd                       // Timed special ends
	EventMindControlEnd                   // Input inversion ends
	EventEMPEnd                           // Special re-enabled
	EventHazardPoll                       // Hazard checks the player
	EventHazardEnd                        // Hazard retires
)

func (k EventKind) String() string {
	switch k {
	case EventShieldDown:
		return "shield_down"
	case EventInvulnerableEnd:
		return "invulnerable_end"
	case EventSpecialEnd:
		return "special_end"
	case EventMindControlEnd:
		return "mind_control_end"
	case EventEMPEnd:
		return "emp_end"
	case EventHazardPoll:
		return "hazard_poll"
	case EventHazardEnd:
		return "hazard_end"
	default:
		return "unknown"
	}
}

// Event is a delayed effect bound to a target entity. It fires only if the
// target is still live when it comes due.
type Event struct {
	At     time.Duration
	Target EntityID
	Kind   EventKind
	seq    uint64
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(Event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// EventQueue orders events by fire time, first scheduled first on ties.
type EventQueue struct {
	h   eventHeap
	seq uint64
}

// Schedule adds an event.
func (q *EventQueue) Schedule(ev Event) {
	q.seq++
	ev.seq = q.seq
	heap.Push(&q.h, ev)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return q.h.Len() }

// PopDue removes and returns the earliest event due at or before now.
func (q *EventQueue) PopDue(now time.Duration) (Event, bool) {
	if q.h.Len() == 0 || q.h[0].At > now {
		return Event{}, false
	}
	return heap.Pop(&q.h).(Event), true
}

// CancelTarget drops every event bound to id and returns how many were dropped.
func (q *EventQueue) CancelTarget(id EntityID) int {
	kept := q.h[:0]
	for _, ev := range q.h {
		if ev.Target != id {
			kept = append(kept, ev)
		}
	}
	n := len(q.h) - len(kept)
	if n > 0 {
		q.h = kept
		heap.Init(&q.h)
	}
	return n
}

// Clear drops every pending event.
func (q *EventQueue) Clear() {
	q.h = q.h[:0]
}
