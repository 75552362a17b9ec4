package gate

import "errors"

// ErrNoCommand is returned by Handoff when no command was supplied.
// The gate refuses to wait for dependencies it has nothing to launch for.
var ErrNoCommand = errors.New("no command specified")
