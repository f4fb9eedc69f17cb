package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"footfall/internal/engine"
	"footfall/internal/metrics"
)

const csvBody = "date,events,allgender_allage\n2024/01/01,Fest,100\n2024/01/02,,80\n"

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o644))

	m := metrics.New()
	svc := NewDatasetService(engine.NewStore(), engine.FileSource(path), time.Second, m, nil)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, engine.StateReady, svc.Store().Snapshot().State)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetRows))
}

func TestLoadFailure(t *testing.T) {
	m := metrics.New()
	src := engine.FileSource(filepath.Join(t.TempDir(), "missing.csv"))
	svc := NewDatasetService(engine.NewStore(), src, 0, m, nil)

	err := svc.Load(context.Background())
	var le *engine.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, engine.StateFailed, svc.Store().Snapshot().State)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))
}

func TestStartAndWait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o644))

	svc := NewDatasetService(engine.NewStore(), engine.FileSource(path), 0, nil, nil)
	require.True(t, svc.Start(context.Background()))
	svc.Wait()

	records, err := svc.Store().Snapshot().Ready()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStartRefusedAfterShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o644))

	svc := NewDatasetService(engine.NewStore(), engine.FileSource(path), 0, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, svc.Start(ctx))

	svc.Wait()
	assert.False(t, svc.Start(context.Background()))
	assert.Equal(t, engine.StateLoading, svc.Store().Snapshot().State)
}

// overtakenSource lets a newer dataset land in the store while it is being read.
type overtakenSource struct {
	engine.FileSource
	store *engine.Store
}

func (o overtakenSource) Open(ctx context.Context) (io.ReadCloser, error) {
	o.store.Set("newer", nil)
	return o.FileSource.Open(ctx)
}

func TestLoadReportsOwnRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvBody), 0o644))

	store := engine.NewStore()
	m := metrics.New()
	svc := NewDatasetService(store, overtakenSource{FileSource: engine.FileSource(path), store: store}, 0, m, nil)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetRows))
	assert.Equal(t, "newer", store.Snapshot().Source)
}
