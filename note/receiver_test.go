package note

import "testing"

func TestOutputForward(t *testing.T) {
	var out Output
	out.Forward(On(60, 1, 0)) // no target: dropped

	rec := &Recorder{}
	out.SetTarget(rec)
	if out.Target() != rec {
		t.Fatal("Target() did not return the configured receiver")
	}

	out.Forward(On(60, 1, 0))
	out.Forward(Off(60, 5))
	if len(rec.Messages) != 2 {
		t.Fatalf("recorded %d messages, want 2", len(rec.Messages))
	}

	last, ok := rec.Last()
	if !ok || last.IsOn() || last.Time != 5 {
		t.Fatalf("Last() = %+v, %v", last, ok)
	}

	rec.Reset()
	if _, ok := rec.Last(); ok {
		t.Fatal("Last() after Reset should report no message")
	}
}

func TestReceiverFunc(t *testing.T) {
	var got int
	var r Receiver = ReceiverFunc(func(m Message) { got = m.Pitch })
	r.PlayNote(On(72, 1, 0))
	if got != 72 {
		t.Fatalf("got pitch %d, want 72", got)
	}
}
