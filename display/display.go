package display

type Display interface {
	// Run the display. It blocks until the display stops.
	Run()

	// ErrChan returns a channel on which the display sends its exit error
	// (nil for a clean exit) when Run returns.
	ErrChan() chan error

	// Stop stops the display
	Stop()
}
