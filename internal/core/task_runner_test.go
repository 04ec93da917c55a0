package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runLog struct {
	mu    sync.Mutex
	names []string
}

func (l *runLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *runLog) count(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, got := range l.names {
		if got == name {
			n++
		}
	}
	return n
}

func recordingTask(log *runLog, name string, required bool, deps ...Task) *FuncTask {
	task := NewFuncTask(name, func(context.Context) error {
		log.add(name)
		return nil
	}, deps...)
	task.Required = func() bool { return required }
	return task
}

type recordingObserver struct {
	mu      sync.Mutex
	running []string
	skipped []string
	failed  []string
}

func (o *recordingObserver) TaskRunning(task Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = append(o.running, task.Name())
}

func (o *recordingObserver) TaskSkipped(task Task) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped = append(o.skipped, task.Name())
}

func (o *recordingObserver) TaskFailed(task Task, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, task.Name())
}

func TestRunTaskRunsDependenciesFirst(t *testing.T) {
	log := &runLog{}
	a := recordingTask(log, "a", true)
	b := recordingTask(log, "b", true)
	root := recordingTask(log, "root", true, a, b)

	ran, err := RunTask(t.Context(), root)
	require.NoError(t, err)
	assert.True(t, ran)
	if diff := cmp.Diff([]string{"a", "b", "root"}, log.names); diff != "" {
		t.Fatalf("unexpected run order (-want +got):\n%s", diff)
	}
}

func TestRunTaskPropagatesWorkUpward(t *testing.T) {
	log := &runLog{}
	leafTask := recordingTask(log, "leaf", true)
	middle := recordingTask(log, "middle", false, leafTask)
	root := recordingTask(log, "root", false, middle)

	ran, err := RunTask(t.Context(), root)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []string{"leaf", "middle", "root"}, log.names)
}

func TestRunTaskSkipsUpToDateTasks(t *testing.T) {
	log := &runLog{}
	observer := &recordingObserver{}
	leafTask := recordingTask(log, "leaf", false)
	root := recordingTask(log, "root", false, leafTask)

	ran, err := NewTaskRunner(observer, 1).Run(t.Context(), root)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Empty(t, log.names)
	assert.Equal(t, []string{"leaf", "root"}, observer.skipped)
}

func TestRunTaskRequiredTaskWithIdleDependencies(t *testing.T) {
	log := &runLog{}
	root := recordingTask(log, "root", true, recordingTask(log, "leaf", false))

	ran, err := RunTask(t.Context(), root)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []string{"root"}, log.names)
}

func TestRunTaskStopsAtFirstFailure(t *testing.T) {
	log := &runLog{}
	boom := errors.New("boom")
	failing := NewFuncTask("failing", func(context.Context) error { return boom })
	after := recordingTask(log, "after", true)
	root := recordingTask(log, "root", true, failing, after)
	observer := &recordingObserver{}

	_, err := NewTaskRunner(observer, 1).Run(t.Context(), root)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, log.names)
	assert.Equal(t, []string{"failing"}, observer.failed)
}

func TestSerialRunnerDoesNotMemoize(t *testing.T) {
	log := &runLog{}
	shared := recordingTask(log, "shared", true)
	root := recordingTask(log, "root", true,
		recordingTask(log, "left", false, shared),
		recordingTask(log, "right", false, shared),
	)

	_, err := RunTask(t.Context(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, log.count("shared"))
}

func TestParallelRunnerRunsSharedTaskOnce(t *testing.T) {
	log := &runLog{}
	shared := recordingTask(log, "shared", true)
	left := recordingTask(log, "left", false, shared)
	right := recordingTask(log, "right", false, shared)
	root := recordingTask(log, "root", false, left, right)

	ran, err := NewTaskRunner(nil, 4).Run(t.Context(), root)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, log.count("shared"))
	assert.Equal(t, 1, log.count("left"))
	assert.Equal(t, 1, log.count("right"))
	assert.Equal(t, 1, log.count("root"))
	assert.Equal(t, "root", log.names[len(log.names)-1])
}

func TestParallelRunnerSkipsIdleGraph(t *testing.T) {
	log := &runLog{}
	shared := recordingTask(log, "shared", false)
	root := recordingTask(log, "root", false,
		recordingTask(log, "left", false, shared),
		recordingTask(log, "right", false, shared),
	)

	ran, err := NewTaskRunner(nil, 2).Run(t.Context(), root)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Empty(t, log.names)
}

func TestParallelRunnerFailsFast(t *testing.T) {
	log := &runLog{}
	boom := errors.New("boom")
	failing := NewFuncTask("failing", func(context.Context) error { return boom })
	root := recordingTask(log, "root", true, failing, recordingTask(log, "other", true))

	_, err := NewTaskRunner(nil, 3).Run(t.Context(), root)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, log.count("root"))
}
