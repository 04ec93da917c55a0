package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	recorder := NewRecorder()
	recorder.TaskOutcome(OutcomeRan)
	recorder.TaskOutcome(OutcomeRan)
	recorder.TaskOutcome(OutcomeSkipped)
	recorder.Resolution(OutcomeResolved, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.tasksTotal.WithLabelValues(OutcomeRan)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.tasksTotal.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.resolutionsTotal.WithLabelValues(OutcomeResolved)))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.resolutionDuration))
}

func TestRecorderWriteTextfile(t *testing.T) {
	recorder := NewRecorder()
	recorder.TaskOutcome(OutcomeFailed)

	path := filepath.Join(t.TempDir(), "conche.prom")
	require.NoError(t, recorder.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `conche_tasks_total{outcome="failed"} 1`))
}

func TestRecordersAreIndependent(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	first.TaskOutcome(OutcomeRan)

	assert.Equal(t, 0.0, testutil.ToFloat64(second.tasksTotal.WithLabelValues(OutcomeRan)))
}
