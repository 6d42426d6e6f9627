package prompt

import "errors"

// ErrAborted is returned when the user interrupts a prompt (Ctrl+C).
var ErrAborted = errors.New("prompt: aborted by user")
