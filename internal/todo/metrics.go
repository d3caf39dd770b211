package todo

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

// InstrumentedStore counts store operations by outcome and exports the
// current record count.
type InstrumentedStore struct {
	Store
	ops *prometheus.CounterVec
}

func NewInstrumentedStore(inner Store, reg prometheus.Registerer) *InstrumentedStore {
	s := &InstrumentedStore{
		Store: inner,
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_store_operations_total",
				Help: "Store operations by kind and outcome",
			},
			[]string{"op", "result"},
		),
	}

	records := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "todo_store_records",
			Help: "Todos currently held",
		},
		func() float64 { return float64(inner.Len()) },
	)

	reg.MustRegister(s.ops, records)
	return s
}

func (s *InstrumentedStore) observe(op string, err error) {
	result := resultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = resultNotFound
	default:
		result = resultError
	}
	s.ops.WithLabelValues(op, result).Inc()
}

func (s *InstrumentedStore) Create(ctx context.Context, title string) (Todo, error) {
	t, err := s.Store.Create(ctx, title)
	s.observe("create", err)
	return t, err
}

func (s *InstrumentedStore) List(ctx context.Context) ([]Todo, error) {
	out, err := s.Store.List(ctx)
	s.observe("list", err)
	return out, err
}

func (s *InstrumentedStore) Get(ctx context.Context, id uint64) (Todo, error) {
	t, err := s.Store.Get(ctx, id)
	s.observe("get", err)
	return t, err
}

func (s *InstrumentedStore) Update(ctx context.Context, id uint64, upd UpdateTodo) (Todo, error) {
	t, err := s.Store.Update(ctx, id, upd)
	s.observe("update", err)
	return t, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, id uint64) error {
	err := s.Store.Delete(ctx, id)
	s.observe("delete", err)
	return err
}
