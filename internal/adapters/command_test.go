package adapters

import (
	"context"
	"errors"
	"strings"
	"sync"
)

type recordedCommand struct {
	Dir  string
	Name string
	Args []string
}

func (c recordedCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// fakeRunner records invocations and optionally fails them.
type fakeRunner struct {
	mu       sync.Mutex
	commands []recordedCommand
	output   string
	fail     bool
	onRun    func(cmd recordedCommand)
}

func (f *fakeRunner) run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmd := recordedCommand{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.commands = append(f.commands, cmd)
	if f.onRun != nil {
		f.onRun(cmd)
	}
	if f.fail {
		return []byte(f.output), errors.New("exit status 1")
	}
	return []byte(f.output), nil
}

func (f *fakeRunner) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.commands))
	for _, cmd := range f.commands {
		out = append(out, cmd.String())
	}
	return out
}
