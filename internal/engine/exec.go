// internal/engine/exec.go
package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vkbridge-core/karst"
	"vkbridge-core/karstfmt"
)

// Exec runs the external KarstNSim binary. Each run stages its inputs
// into a fresh scratch directory, invokes the binary with the manifest
// path as its only argument and reads the network it leaves behind.
type Exec struct {
	// Path is the engine binary. Resolved through PATH when relative.
	Path string
	// Workdir hosts the per-run scratch directories. Empty means the
	// system temp directory.
	Workdir string
	// Keep leaves the scratch directory in place after the run.
	Keep bool

	Log *zap.Logger
}

func (e *Exec) Run(ctx context.Context, in *Input) (*karst.Network, error) {
	base := e.Workdir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "vkbridge-"+uuid.NewString())
	if err := os.MkdirAll(filepath.Join(dir, "output"), 0o755); err != nil {
		return nil, fmt.Errorf("%w: scratch dir: %v", ErrEngine, err)
	}
	if !e.Keep {
		defer os.RemoveAll(dir)
	}

	files, err := Stage(dir, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	e.Log.Debug("staged engine inputs",
		zap.String("dir", dir),
		zap.Int("files", len(files)))

	cmd := exec.CommandContext(ctx, e.Path, FileParams)
	cmd.Dir = dir
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrEngine, e.Path, err)
	}
	sc := bufio.NewScanner(stderr)
	for sc.Scan() {
		e.Log.Debug("engine", zap.String("line", sc.Text()))
	}
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrEngine, e.Path, err)
	}

	out, err := os.Open(filepath.Join(dir, filepath.FromSlash(FileNetwork)))
	if err != nil {
		return nil, fmt.Errorf("%w: no network produced: %v", ErrEngine, err)
	}
	defer out.Close()
	net, err := karstfmt.ReadNetwork(out, FileNetwork)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	if e.Keep {
		e.Log.Info("keeping engine workdir", zap.String("dir", dir))
	}
	return net, nil
}
