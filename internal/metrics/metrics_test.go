package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Reconciled("standard", "created")
	m.Reconciled("standard", "created")
	m.Reconciled("standard", "skipped")
	m.Dropped("licence")
	m.Swept("standard", 3)
	m.Drained(5)
	m.ParseFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reconciled.WithLabelValues("standard", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reconciled.WithLabelValues("standard", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped.WithLabelValues("licence")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.swept.WithLabelValues("standard")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.drained))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.parseErrors))
}

func TestSyncFinished(t *testing.T) {
	m := New()
	start := time.Unix(1622548800, 0)

	m.SyncFinished(start, start.Add(2*time.Second))

	assert.Equal(t, float64(1622548802), testutil.ToFloat64(m.lastSync))
	assert.Equal(t, 1, testutil.CollectAndCount(m.syncSeconds))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Reconciled("standard", "created")
		m.Dropped("standard")
		m.Swept("standard", 1)
		m.Drained(1)
		m.ParseFailed()
		m.SyncFinished(time.Now(), time.Now())
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Reconciled("topic", "updated")

	path := filepath.Join(t.TempDir(), "hammer.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `hammer_reconciled_total{kind="topic",outcome="updated"} 1`)
}
