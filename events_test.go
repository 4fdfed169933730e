package router

import "testing"

func TestBusEmitOrder(t *testing.T) {
	b := NewBus()
	var order []int
	b.On(EventAfterNavigate, func(d EventData) bool { order = append(order, 1); return true })
	b.On(EventAfterNavigate, func(d EventData) bool { order = append(order, 2); return true })
	b.On(EventAfterNavigate, func(d EventData) bool { order = append(order, 3); return true })

	if !b.Emit(EventAfterNavigate, EventData{Path: "/x"}) {
		t.Fatal("fire-and-forget emit should return true")
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", order)
	}
}

func TestBusVetoOnlyOnBeforeNavigate(t *testing.T) {
	b := NewBus()
	ran := false
	b.On(EventAfterNavigate, func(d EventData) bool { return false })
	b.On(EventAfterNavigate, func(d EventData) bool { ran = true; return true })

	if !b.Emit(EventAfterNavigate, EventData{}) {
		t.Error("false return must be ignored outside beforeNavigate")
	}
	if !ran {
		t.Error("emission must continue on non-vetoable channels")
	}
}

func TestBusVetoStopsEmission(t *testing.T) {
	b := NewBus()
	later := false
	b.On(EventBeforeNavigate, func(d EventData) bool { return false })
	b.On(EventBeforeNavigate, func(d EventData) bool { later = true; return true })

	if b.Emit(EventBeforeNavigate, EventData{}) {
		t.Error("veto should make Emit return false")
	}
	if later {
		t.Error("veto should stop emission to later listeners")
	}
}

func TestBusPayload(t *testing.T) {
	b := NewBus()
	var got EventData
	b.On(EventError, func(d EventData) bool { got = d; return true })

	want := EventData{Path: "/p", Err: ErrTooManyRedirects}
	b.Emit(EventError, want)
	if got.Path != want.Path || got.Err != want.Err {
		t.Errorf("payload = %+v, want %+v", got, want)
	}
}

func TestBusEmitEmptyChannel(t *testing.T) {
	b := NewBus()
	if !b.Emit(EventBeforeNavigate, EventData{}) {
		t.Error("emit with no listeners should return true")
	}
}
