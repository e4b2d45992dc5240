package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"punter/communication"
)

// Process runs a punter executable in offline mode: every request starts a fresh process that
// reads one message from stdin, answers on stdout and exits.
type Process struct {
	Command string
	Args    []string
}

// NewProcess splits a punter identifier such as "./punter --strategy greedy" into command and
// arguments.
func NewProcess(identifier string) *Process {
	fields := strings.Fields(identifier)
	if len(fields) == 0 {
		return &Process{}
	}
	return &Process{Command: fields[0], Args: fields[1:]}
}

func (p *Process) Name() string {
	return filepath.Base(p.Command)
}

func (p *Process) Exchange(ctx context.Context, request communication.ServerMessage, reply any) error {
	if p.Command == "" {
		return fmt.Errorf("%w: empty command", ErrPunterFailed)
	}
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPunterFailed, p.Name(), err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPunterFailed, p.Name(), err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPunterFailed, p.Name(), err)
	}

	exchangeErr := exchange(communication.NewConn(p.Name(), stdout, stdin), stdin.Close, request, reply)
	if exchangeErr != nil {
		// Unblock the process if it is still waiting for input.
		stdin.Close()
	}
	waitErr := cmd.Wait()
	switch {
	case waitErr != nil:
		return fmt.Errorf("%w: %s: %v\n%s", ErrPunterFailed, p.Name(), waitErr, stderr.Bytes())
	case exchangeErr != nil:
		return fmt.Errorf("%w: %s: %v\n%s", ErrPunterFailed, p.Name(), exchangeErr, stderr.Bytes())
	}
	return nil
}
