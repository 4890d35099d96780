// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain resolves and executes the external poppler binaries
// that do the actual PDF work. See docs/ARCHITECTURE § Toolchain.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdfworks/pkg/types"
)

// Binary names of the poppler tools this package knows how to drive.
const (
	BinPdftoppm  = "pdftoppm"
	BinPdfinfo   = "pdfinfo"
	BinPdftotext = "pdftotext"
)

// ErrToolNotFound reports that an external binary is not installed or not
// on PATH. Callers match it with errors.Is.
var ErrToolNotFound = errors.New("external tool not found")

// RunError reports that an external tool started but exited with a failure.
// It carries the tool's captured stderr, which poppler uses for diagnostics.
type RunError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Tool is a resolved external binary ready to run.
type Tool struct {
	name string
	path string
	exec executor
}

// Name returns the binary name (e.g. "pdftoppm").
func (t *Tool) Name() string { return t.name }

// Path returns the resolved filesystem path of the binary.
func (t *Tool) Path() string { return t.path }

// Run executes the tool with a structured argument list, piping stdin and
// stdout in binary mode. The argument list is passed to the process as-is;
// no shell is involved, so no quoting or escaping applies. A non-zero exit
// is returned as a *RunError carrying the captured stderr.
func (t *Tool) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	if err := t.exec.RunPiped(ctx, t.path, args, stdin, stdout, &stderr); err != nil {
		return &RunError{Tool: t.name, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// Output runs the tool and returns its standard output as raw bytes.
func (t *Tool) Output(ctx context.Context, args []string, stdin io.Reader) ([]byte, error) {
	var out bytes.Buffer
	if err := t.Run(ctx, args, stdin, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Toolchain resolves poppler binaries, honoring configured path overrides.
type Toolchain struct {
	exec      executor
	overrides map[string]string
}

// New creates a Toolchain using cfg's explicit tool paths where set and
// PATH lookup otherwise.
func New(cfg types.ToolsConfig) *Toolchain {
	return newToolchain(cfg, defaultExec)
}

func newToolchain(cfg types.ToolsConfig, exec executor) *Toolchain {
	return &Toolchain{
		exec: exec,
		overrides: map[string]string{
			BinPdftoppm:  cfg.Pdftoppm,
			BinPdfinfo:   cfg.Pdfinfo,
			BinPdftotext: cfg.Pdftotext,
		},
	}
}

// Find resolves the named tool. An explicit configured path is trusted if
// the file exists; otherwise the binary is looked up on PATH and probed
// with its version flag. Missing tools yield ErrToolNotFound.
func (tc *Toolchain) Find(name string) (*Tool, error) {
	if override := tc.overrides[name]; override != "" {
		if _, err := os.Stat(override); err != nil {
			return nil, fmt.Errorf("%s at %s: %w", name, override, ErrToolNotFound)
		}
		return &Tool{name: name, path: override, exec: tc.exec}, nil
	}

	path, err := tc.exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (install poppler-utils)", name, ErrToolNotFound)
	}

	// Poppler tools print their version on -v but exit non-zero, so any
	// completed run counts as proof the binary executes.
	if err := tc.exec.RunSilent(path, "-v"); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s found at %s but not runnable: %w", name, path, ErrToolNotFound)
		}
	}

	return &Tool{name: name, path: path, exec: tc.exec}, nil
}

// ToolStatus reports availability of one external binary.
type ToolStatus struct {
	Name      string
	Path      string
	Available bool
}

// Status probes all known tools and reports their availability.
func (tc *Toolchain) Status() []ToolStatus {
	names := []string{BinPdftoppm, BinPdfinfo, BinPdftotext}
	statuses := make([]ToolStatus, 0, len(names))
	for _, name := range names {
		t, err := tc.Find(name)
		if err != nil {
			statuses = append(statuses, ToolStatus{Name: name})
			continue
		}
		statuses = append(statuses, ToolStatus{Name: name, Path: t.Path(), Available: true})
	}
	return statuses
}
