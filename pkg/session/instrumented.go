package session

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	next Store
	ops  *prometheus.CounterVec
}

// Instrument counts every operation on next by outcome.
func Instrument(next Store, ops *prometheus.CounterVec) Store {
	return &instrumented{next: next, ops: ops}
}

func (s *instrumented) observe(op string, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "miss"
	case err != nil:
		status = "error"
	}
	s.ops.WithLabelValues(op, status).Inc()
}

func (s *instrumented) Save(ctx context.Context, sess *Session) error {
	err := s.next.Save(ctx, sess)
	s.observe("save", err)
	return err
}

func (s *instrumented) Get(ctx context.Context, id string) (*Session, error) {
	sess, err := s.next.Get(ctx, id)
	s.observe("get", err)
	return sess, err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	err := s.next.Delete(ctx, id)
	s.observe("delete", err)
	return err
}
