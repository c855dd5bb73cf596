// ABOUTME: Tests for the event bus's publish, coalesce, and re-entrancy-guard behavior

package eventbus

import "testing"

func TestPublish_DeliversToAllSubscribersInOrder(t *testing.T) {
	bus := New()
	var order []int
	bus.Subscribe(ActionsChanged, func(ev Event) { order = append(order, 1) })
	bus.Subscribe(ActionsChanged, func(ev Event) { order = append(order, 2) })

	bus.Publish(Event{Kind: ActionsChanged, ScriptID: 0})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestPublish_ReentrantSameKindIsDropped(t *testing.T) {
	bus := New()
	calls := 0
	bus.Subscribe(ActionsChanged, func(ev Event) {
		calls++
		if calls == 1 {
			bus.Publish(Event{Kind: ActionsChanged, ScriptID: ev.ScriptID})
		}
	})

	bus.Publish(Event{Kind: ActionsChanged, ScriptID: 0})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 (re-entrant publish should be dropped)", calls)
	}
}

func TestPublish_ReentrantDifferentKindStillDelivers(t *testing.T) {
	bus := New()
	var selectionFired bool
	bus.Subscribe(SelectionChanged, func(ev Event) { selectionFired = true })
	bus.Subscribe(ActionsChanged, func(ev Event) {
		bus.Publish(Event{Kind: SelectionChanged, ScriptID: ev.ScriptID})
	})

	bus.Publish(Event{Kind: ActionsChanged, ScriptID: 0})

	if !selectionFired {
		t.Error("SelectionChanged should still deliver when re-entered from a different Kind's handler")
	}
}

func TestCoalesce_CollapsesBurstToOneDeliveryPerScript(t *testing.T) {
	bus := New()
	deliveries := 0
	var lastPayload any
	bus.Subscribe(ActionsChanged, func(ev Event) {
		deliveries++
		lastPayload = ev.Payload
	})

	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 1, Payload: "first"})
	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 1, Payload: "second"})
	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 1, Payload: "third"})
	bus.Flush()

	if deliveries != 1 {
		t.Errorf("deliveries = %d, want 1", deliveries)
	}
	if lastPayload != "third" {
		t.Errorf("lastPayload = %v, want the most recently coalesced event", lastPayload)
	}
}

func TestCoalesce_DistinctScriptIDsDeliverSeparately(t *testing.T) {
	bus := New()
	var seen []int
	bus.Subscribe(ActionsChanged, func(ev Event) { seen = append(seen, ev.ScriptID) })

	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 0})
	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 1})
	bus.Flush()

	if len(seen) != 2 {
		t.Fatalf("seen = %v, want two deliveries", seen)
	}
}

func TestFlush_EmptiesQueueSoRepeatedFlushIsNoop(t *testing.T) {
	bus := New()
	deliveries := 0
	bus.Subscribe(ActionsChanged, func(ev Event) { deliveries++ })

	bus.Coalesce(Event{Kind: ActionsChanged, ScriptID: 0})
	bus.Flush()
	bus.Flush()

	if deliveries != 1 {
		t.Errorf("deliveries = %d, want 1 (second Flush should find an empty queue)", deliveries)
	}
}
