package di

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/logger"
	"github.com/kbukum/aliasdi/module"
)

// journal records lifecycle events in the order they happen.
type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(event string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, event)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

// service is the resolved value used by most tests.
type service struct {
	Name string
	Nr   int
	Ext  Scope

	deps     []string
	journal  *journal
	initHook func(ctx context.Context, s *service, params any) (any, error)
	closeErr error

	inits     int32
	scopeKeys []string
}

func (s *service) Needs() []string { return s.deps }

func (s *service) Init(ctx context.Context, params any) (any, error) {
	atomic.AddInt32(&s.inits, 1)
	for k := range s.Ext {
		s.scopeKeys = append(s.scopeKeys, k)
	}
	sort.Strings(s.scopeKeys)
	if s.journal != nil {
		s.journal.add("init:" + s.Name)
	}
	if s.initHook != nil {
		return s.initHook(ctx, s, params)
	}
	return nil, nil
}

func (s *service) Close() error {
	if s.journal != nil {
		s.journal.add("close:" + s.Name)
	}
	return s.closeErr
}

// serviceClass constructs services. It counts constructions and can block
// until released.
type serviceClass struct {
	name     string
	deps     []string
	journal  *journal
	initHook func(ctx context.Context, s *service, params any) (any, error)

	constructs atomic.Int32
	entered    chan struct{}
	release    chan struct{}
	fail       func(n int32) error
}

func (sc *serviceClass) Construct(ctx context.Context, params any) (any, error) {
	n := sc.constructs.Add(1)
	if sc.entered != nil {
		select {
		case sc.entered <- struct{}{}:
		default:
		}
	}
	if sc.release != nil {
		<-sc.release
	}
	if sc.fail != nil {
		if err := sc.fail(n); err != nil {
			return nil, err
		}
	}
	s := &service{Name: sc.name, deps: sc.deps, journal: sc.journal, initHook: sc.initHook}
	if m, ok := params.(map[string]any); ok {
		if nr, ok := m["n"].(int); ok {
			s.Nr = nr
		}
	}
	if sc.journal != nil {
		sc.journal.add("construct:" + sc.name)
	}
	return s, nil
}

func newTestContainer(t *testing.T, table *module.Table, opts ...Option) *Container {
	t.Helper()
	opts = append([]Option{WithResolver(table), WithLogger(logger.Nop())}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func mustRegister(t *testing.T, c *Container, raw any) {
	t.Helper()
	if err := c.Register(raw); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func mustGet(t *testing.T, c *Container, alias string) any {
	t.Helper()
	v, err := c.Get(context.Background(), alias)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", alias, err)
	}
	return v
}

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", buf)
}

func constructed(specifier string) map[string]any {
	return map[string]any{"module": specifier, "instantiate": true}
}

// message returns the message of an AppError without its code prefix.
func message(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
