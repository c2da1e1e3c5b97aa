// internal/app/app.go
//
// Package app wires the command tree and maps failures onto process exit
// codes.
package app

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"vkbridge/internal/engine"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitUsage  = 2 // bad invocation, unreadable or invalid project
	ExitWrite  = 3 // outputs could not be written
	ExitEngine = 4 // the simulation itself failed
	ExitSignal = 130
)

// errWrite tags failures to persist results.
var errWrite = errors.New("write failure")

type app struct {
	verbose bool
	log     *zap.Logger
}

// RunContext executes argv and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.newRoot()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	switch {
	case err == nil:
		return ExitOK
	case ctx.Err() != nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitSignal
	case errors.Is(err, engine.ErrEngine):
		return ExitEngine
	case errors.Is(err, errWrite):
		return ExitWrite
	default:
		return ExitUsage
	}
}
