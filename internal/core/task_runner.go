package core

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RunObserver is told about every task the runner reaches.
type RunObserver interface {
	TaskRunning(task Task)
	TaskSkipped(task Task)
	TaskFailed(task Task, err error)
}

// TaskRunner executes a task after its dependencies. With Jobs above one,
// independent branches run concurrently and each task instance runs at
// most once per Run call; otherwise the walk is sequential and follows
// dependency lists as written.
type TaskRunner struct {
	Observer RunObserver
	Jobs     int
}

func NewTaskRunner(observer RunObserver, jobs int) TaskRunner {
	return TaskRunner{Observer: observer, Jobs: jobs}
}

// Run executes task and reports whether any work was done.
func (r TaskRunner) Run(ctx context.Context, task Task) (bool, error) {
	if r.Jobs > 1 {
		p := &parallelRun{
			runner:  r,
			sem:     semaphore.NewWeighted(int64(r.Jobs)),
			futures: map[Task]*taskFuture{},
		}
		return p.run(ctx, task)
	}
	return r.runSerial(ctx, task)
}

// RunTask runs task sequentially without an observer.
func RunTask(ctx context.Context, task Task) (bool, error) {
	return TaskRunner{}.Run(ctx, task)
}

func (r TaskRunner) runSerial(ctx context.Context, task Task) (bool, error) {
	didWork := false
	for _, dep := range task.Dependencies() {
		ran, err := r.runSerial(ctx, dep)
		if err != nil {
			return false, err
		}
		didWork = didWork || ran
	}
	return r.runSelf(ctx, task, didWork)
}

func (r TaskRunner) runSelf(ctx context.Context, task Task, dependencyDidWork bool) (bool, error) {
	if !dependencyDidWork && !task.IsRequired() {
		if r.Observer != nil {
			r.Observer.TaskSkipped(task)
		}
		return false, nil
	}
	if r.Observer != nil {
		r.Observer.TaskRunning(task)
	}
	if err := task.Run(ctx); err != nil {
		if r.Observer != nil {
			r.Observer.TaskFailed(task, err)
		}
		return false, err
	}
	return true, nil
}

type taskFuture struct {
	done chan struct{}
	ran  bool
	err  error
}

type parallelRun struct {
	runner  TaskRunner
	sem     *semaphore.Weighted
	mu      sync.Mutex
	futures map[Task]*taskFuture
}

func (p *parallelRun) run(ctx context.Context, task Task) (bool, error) {
	p.mu.Lock()
	if future, ok := p.futures[task]; ok {
		p.mu.Unlock()
		select {
		case <-future.done:
			return future.ran, future.err
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	future := &taskFuture{done: make(chan struct{})}
	p.futures[task] = future
	p.mu.Unlock()

	future.ran, future.err = p.execute(ctx, task)
	close(future.done)
	return future.ran, future.err
}

func (p *parallelRun) execute(ctx context.Context, task Task) (bool, error) {
	deps := task.Dependencies()
	results := make([]bool, len(deps))
	g, gctx := errgroup.WithContext(ctx)
	for i, dep := range deps {
		g.Go(func() error {
			ran, err := p.run(gctx, dep)
			results[i] = ran
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	// The semaphore bounds Run calls only, never the wait on dependencies.
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)
	return p.runner.runSelf(ctx, task, slices.Contains(results, true))
}
