// Package backend hands processed specifications off to the external
// applications that consume them.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/accelforge/specfe/encode"
	"github.com/accelforge/specfe/pipeline"
)

// ProcessedFileName is the name under which a processed specification
// is written to the output directory. A file with this name given as
// input bypasses processing entirely.
const ProcessedFileName = "parsed-processed-input.yaml"

var executables = map[string]string{
	"model":     "timeloop-model",
	"mapper":    "timeloop-mapper",
	"accelergy": "accelergy",
}

var ErrUnknownApp = errors.New("unknown application")

// Executable maps an application name to the binary that runs it.
func Executable(app string) (string, error) {
	exe, ok := executables[app]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownApp, app)
	}
	return exe, nil
}

// Apps lists the application names Executable accepts.
func Apps() []string {
	return []string{"model", "mapper", "accelergy"}
}

// Caller invokes an application on a set of input files.
type Caller interface {
	Call(ctx context.Context, app string, inputFiles []string, outputDir string) error
}

// ExecCaller runs applications as subprocesses.
type ExecCaller struct {
	Log    *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

func NewExecCaller() *ExecCaller {
	return &ExecCaller{
		Log:    slog.Default(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (c *ExecCaller) Call(ctx context.Context, app string, inputFiles []string, outputDir string) error {
	exe, err := Executable(app)
	if err != nil {
		return err
	}
	args := append([]string{}, inputFiles...)
	args = append(args, "-o", outputDir)
	c.Log.Debug("calling application", "app", app, "exe", exe, "args", args)
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", exe, err)
	}
	return nil
}

// WriteProcessed writes the processed specification into dir and
// returns the path of the written file.
func WriteProcessed(s *pipeline.Specification, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	out, err := encode.Marshal(s.Root)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ProcessedFileName)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
