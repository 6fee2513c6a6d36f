package slideshow

// ErrorKind classifies the recoverable failures surfaced to the
// presentation layer.
type ErrorKind string

const (
	ErrorInvalidDirectory ErrorKind = "invalid_directory"
	ErrorNoImagesFound    ErrorKind = "no_images_found"
)

// Event is implemented by every notification the controller emits. Events
// are delivered synchronously from inside controller operations, so sinks
// must not call back into the controller.
type Event interface {
	event()
}

// ImageChanged reports a newly displayed image. Position is the 1-based
// sequence of the image within the pass and Total the size of the queue.
type ImageChanged struct {
	Path     string
	Position int
	Total    int
}

// CountdownUpdate reports the remaining display time of the current image.
type CountdownUpdate struct {
	Remaining int
	Interval  int
}

// SessionComplete signals that every image of the pass was shown and the
// controller stopped itself. A terminal signal, not an error.
type SessionComplete struct{}

// SessionError surfaces a recoverable failure. The controller is back in a
// valid state by the time one is emitted.
type SessionError struct {
	Kind    ErrorKind
	Message string
}

// StateChanged reports transitions between idle, running and paused.
type StateChanged struct {
	State State
}

func (ImageChanged) event()    {}
func (CountdownUpdate) event() {}
func (SessionComplete) event() {}
func (SessionError) event()    {}
func (StateChanged) event()    {}
