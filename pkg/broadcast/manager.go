package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/particlewire/pkg/telemetry"
)

// TickDuration is the length of one game tick.
const TickDuration = 50 * time.Millisecond

var (
	ErrInvalidTask = errors.New("broadcast: task needs frames, an audience and a positive period")
	ErrClosed      = errors.New("broadcast: manager is shut down")
)

// TaskID identifies a running task.
type TaskID uint64

// Task resends pre-encoded packets to an audience every Ticks ticks.
type Task struct {
	Frames   [][]byte
	Audience Audience
	Ticks    int
	// Repeat is the number of deliveries; 0 repeats until stopped.
	Repeat int
}

// TaskInfo describes a running task.
type TaskInfo struct {
	ID        TaskID    `json:"id"`
	Ticks     int       `json:"ticks"`
	Frames    int       `json:"frames"`
	Repeat    int       `json:"repeat"`
	Rounds    int64     `json:"rounds"`
	Delivered int64     `json:"delivered"`
	Started   time.Time `json:"started"`
}

type running struct {
	id        TaskID
	task      Task
	cancel    context.CancelFunc
	started   time.Time
	rounds    atomic.Int64
	delivered atomic.Int64
}

// Option configures a Manager or Hub.
type Option func(*options)

type options struct {
	tick         time.Duration
	writeTimeout time.Duration
	metrics      *telemetry.Metrics
	logger       *slog.Logger
}

// WithTick overrides the tick length. Tests use a short tick.
func WithTick(d time.Duration) Option {
	return func(o *options) {
		o.tick = d
	}
}

// WithWriteTimeout sets the per-frame write deadline for hub endpoints.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithMetrics sets the collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{
		tick:         TickDuration,
		writeTimeout: 5 * time.Second,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Manager runs repeating delivery tasks against a directory.
type Manager struct {
	dir  Directory
	opts options

	mu     sync.Mutex
	nextID TaskID
	tasks  map[TaskID]*running
	closed bool
	wg     sync.WaitGroup
}

// NewManager creates a task manager that resolves audiences against dir.
func NewManager(dir Directory, opts ...Option) *Manager {
	return &Manager{
		dir:   dir,
		opts:  buildOptions(opts),
		tasks: make(map[TaskID]*running),
	}
}

// Start launches task. The first delivery happens immediately.
func (m *Manager) Start(task Task) (TaskID, error) {
	if len(task.Frames) == 0 || task.Audience == nil || task.Ticks <= 0 || task.Repeat < 0 {
		return 0, ErrInvalidTask
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}

	m.nextID++
	ctx, cancel := context.WithCancel(context.Background())
	r := &running{id: m.nextID, task: task, cancel: cancel, started: time.Now()}
	m.tasks[r.id] = r

	m.wg.Add(1)
	m.opts.metrics.RecordTaskStart()
	go m.run(ctx, r)

	m.opts.logger.Debug("task started", "task", r.id, "ticks", task.Ticks, "frames", len(task.Frames))
	return r.id, nil
}

func (m *Manager) run(ctx context.Context, r *running) {
	defer m.wg.Done()
	defer m.finish(r)

	ticker := time.NewTicker(time.Duration(r.task.Ticks) * m.opts.tick)
	defer ticker.Stop()

	for {
		m.deliver(ctx, r)
		if r.task.Repeat > 0 && r.rounds.Load() >= int64(r.task.Repeat) {
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) deliver(ctx context.Context, r *running) {
	endpoints := r.task.Audience(m.dir)
	n, err := Send(ctx, r.task.Frames, endpoints)
	r.rounds.Add(1)
	r.delivered.Add(int64(n))
	m.opts.metrics.RecordFrames(n)
	if err != nil && ctx.Err() == nil {
		m.opts.metrics.RecordDeliveryError("write")
		m.opts.logger.Warn("delivery failed", "task", r.id, "error", err)
	}
}

func (m *Manager) finish(r *running) {
	m.mu.Lock()
	if m.tasks[r.id] == r {
		delete(m.tasks, r.id)
	}
	m.mu.Unlock()
	r.cancel()
	m.opts.metrics.RecordTaskStop()
	m.opts.logger.Debug("task finished", "task", r.id, "rounds", r.rounds.Load())
}

// Stop cancels a task. It reports whether the task was running.
func (m *Manager) Stop(id TaskID) bool {
	m.mu.Lock()
	r, ok := m.tasks[id]
	if ok {
		delete(m.tasks, id)
	}
	m.mu.Unlock()
	if ok {
		r.cancel()
	}
	return ok
}

// Running lists the running tasks by id.
func (m *Manager) Running() []TaskInfo {
	m.mu.Lock()
	infos := make([]TaskInfo, 0, len(m.tasks))
	for _, r := range m.tasks {
		infos = append(infos, TaskInfo{
			ID:        r.id,
			Ticks:     r.task.Ticks,
			Frames:    len(r.task.Frames),
			Repeat:    r.task.Repeat,
			Rounds:    r.rounds.Load(),
			Delivered: r.delivered.Load(),
			Started:   r.started,
		})
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Shutdown stops every task and waits for them to exit or ctx to end.
// Start fails after Shutdown.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	for id, r := range m.tasks {
		r.cancel()
		delete(m.tasks, id)
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.opts.logger.Info("broadcast manager shutdown")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
