// Package notify carries user-facing notices from the task store to the
// surface that renders them.
package notify

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a short human-readable message.
type Notice struct {
	Kind    Kind
	Message string
}

// Success returns a success notice.
func Success(msg string) Notice {
	return Notice{Kind: KindSuccess, Message: msg}
}

// Error returns an error notice.
func Error(msg string) Notice {
	return Notice{Kind: KindError, Message: msg}
}

// Notifier receives notices.
type Notifier interface {
	Notify(Notice)
}

// Func adapts a function to Notifier.
type Func func(Notice)

// Notify calls f(n).
func (f Func) Notify(n Notice) {
	f(n)
}

// Discard drops every notice.
var Discard Notifier = Func(func(Notice) {})

// Recorder keeps every notice it receives.
type Recorder struct {
	Notices []Notice
}

// Notify records n.
func (r *Recorder) Notify(n Notice) {
	r.Notices = append(r.Notices, n)
}

// Last returns the most recent notice and whether there was one.
func (r *Recorder) Last() (Notice, bool) {
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}

// Drain returns the recorded notices and clears the recorder.
func (r *Recorder) Drain() []Notice {
	out := r.Notices
	r.Notices = nil
	return out
}
