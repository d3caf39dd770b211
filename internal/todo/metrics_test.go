package todo_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniTodo/internal/todo"
)

func TestInstrumentedStore_CountsOutcomes(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s := todo.NewInstrumentedStore(todo.NewMemStore(todo.Seed()...), reg)

	_, err := s.Create(ctx, "x")
	require.NoError(t, err)
	_, err = s.Get(ctx, 3)
	require.NoError(t, err)
	_, err = s.Get(ctx, 99)
	require.ErrorIs(t, err, todo.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, 99), todo.ErrNotFound)

	n, err := testutil.GatherAndCount(reg, "todo_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var records float64
	for _, mf := range mfs {
		if mf.GetName() == "todo_store_records" {
			records = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(3), records)
}
