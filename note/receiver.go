package note

// Receiver consumes note messages.
type Receiver interface {
	PlayNote(m Message)
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(m Message)

// PlayNote calls f(m).
func (f ReceiverFunc) PlayNote(m Message) {
	f(m)
}

// Output forwards messages to exactly one downstream receiver.
// The zero value drops everything.
type Output struct {
	target Receiver
}

// SetTarget replaces the downstream receiver. nil disconnects.
func (o *Output) SetTarget(r Receiver) {
	o.target = r
}

// Target returns the downstream receiver.
func (o *Output) Target() Receiver {
	return o.target
}

// Forward sends m downstream.
func (o *Output) Forward(m Message) {
	if o.target != nil {
		o.target.PlayNote(m)
	}
}

// Recorder is a Receiver that keeps every message it is sent.
type Recorder struct {
	Messages []Message
}

// PlayNote records m.
func (r *Recorder) PlayNote(m Message) {
	r.Messages = append(r.Messages, m)
}

// Last returns the most recent message and whether there was one.
func (r *Recorder) Last() (Message, bool) {
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}

// Reset drops all recorded messages.
func (r *Recorder) Reset() {
	r.Messages = r.Messages[:0]
}
