package core

import "context"

// Task is a named unit of build work. Tasks are compared by identity, so
// implementations are expected to be pointer types.
type Task interface {
	Name() string
	Dependencies() []Task
	// IsRequired reports whether the task has work of its own to do. A
	// task whose dependencies did work runs regardless.
	IsRequired() bool
	Run(ctx context.Context) error
}

// FuncTask adapts a function into a Task. It is required unless Required
// says otherwise.
type FuncTask struct {
	TaskName string
	Deps     []Task
	Required func() bool
	Fn       func(ctx context.Context) error
}

func NewFuncTask(name string, fn func(ctx context.Context) error, deps ...Task) *FuncTask {
	return &FuncTask{TaskName: name, Deps: deps, Fn: fn}
}

func (t *FuncTask) Name() string         { return t.TaskName }
func (t *FuncTask) Dependencies() []Task { return t.Deps }

func (t *FuncTask) IsRequired() bool {
	if t.Required == nil {
		return true
	}
	return t.Required()
}

func (t *FuncTask) Run(ctx context.Context) error {
	if t.Fn == nil {
		return nil
	}
	return t.Fn(ctx)
}
