package notify

import "testing"

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	if _, ok := r.Last(); ok {
		t.Error("empty recorder should have no last notice")
	}

	var n Notifier = r
	n.Notify(Success("added"))
	n.Notify(Error("empty"))

	last, ok := r.Last()
	if !ok || last.Kind != KindError || last.Message != "empty" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	drained := r.Drain()
	if len(drained) != 2 || drained[0].Kind != KindSuccess {
		t.Errorf("Drain() = %+v", drained)
	}
	if len(r.Notices) != 0 {
		t.Error("Drain should clear the recorder")
	}
}

func TestFunc(t *testing.T) {
	var got Notice
	var n Notifier = Func(func(x Notice) { got = x })
	n.Notify(Success("hi"))
	if got.Message != "hi" {
		t.Errorf("Func did not forward notice: %+v", got)
	}

	Discard.Notify(Error("ignored"))
}
