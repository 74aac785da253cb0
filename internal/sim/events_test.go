package sim

import (
	"testing"
	"time"
)

func TestEventQueueOrder(t *testing.T) {
	var q EventQueue
	q.Schedule(Event{At: 30 * time.Millisecond, Target: 1, Kind: EventHazardEnd})
	q.Schedule(Event{At: 10 * time.Millisecond, Target: 2, Kind: EventShieldDown})
	q.Schedule(Event{At: 20 * time.Millisecond, Target: 3, Kind: EventEMPEnd})
	q.Schedule(Event{At: 10 * time.Millisecond, Target: 4, Kind: EventSpecialEnd})

	if _, ok := q.PopDue(5 * time.Millisecond); ok {
		t.Fatal("nothing is due at 5ms")
	}

	var got []EntityID
	for {
		ev, ok := q.PopDue(25 * time.Millisecond)
		if !ok {
			break
		}
		got = append(got, ev.Target)
	}
	want := []EntityID{2, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("popped %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("popped %v, expected %v", got, want)
			break
		}
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", q.Len())
	}
}

func TestEventQueueCancelTarget(t *testing.T) {
	var q EventQueue
	for i := range 6 {
		q.Schedule(Event{At: time.Duration(i) * time.Second, Target: EntityID(i%2 + 1)})
	}

	if n := q.CancelTarget(1); n != 3 {
		t.Errorf("CancelTarget(1) = %d, expected 3", n)
	}
	if n := q.CancelTarget(1); n != 0 {
		t.Errorf("second CancelTarget(1) = %d, expected 0", n)
	}

	prev := time.Duration(-1)
	for {
		ev, ok := q.PopDue(time.Hour)
		if !ok {
			break
		}
		if ev.Target != 2 {
			t.Errorf("cancelled event for %d fired", ev.Target)
		}
		if ev.At < prev {
			t.Errorf("events out of order after cancel: %v before %v", prev, ev.At)
		}
		prev = ev.At
	}
}

func TestEventQueueClear(t *testing.T) {
	var q EventQueue
	q.Schedule(Event{At: time.Second})
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() = %d after Clear", q.Len())
	}
	if _, ok := q.PopDue(time.Hour); ok {
		t.Error("cleared queue returned an event")
	}
}

func TestEventsForRemovedTargetsNeverFire(t *testing.T) {
	rs, _ := newTestRun(t, testConfig())
	e := spawn(rs, KindBasic, 100, 100)
	e.Invulnerable = true
	e.shieldUntil = 0
	rs.Events.Schedule(Event{At: 0, Target: e.ID, Kind: EventShieldDown})

	// Dropped from the live set without cancellation: the drain must skip it.
	delete(rs.live, e.ID)
	rs.drainEvents()
	if !e.Invulnerable {
		t.Error("event fired for a target that is no longer live")
	}
	if rs.Events.Len() != 0 {
		t.Error("stale event should be consumed")
	}
}
