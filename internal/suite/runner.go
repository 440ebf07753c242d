// Package suite orchestrates a full benchmark run: warm-up, the pinned
// single-core suite, the fan-out multi-core suite, validation, scoring
// and the final immutable summary.
package suite

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/corebench/corebench/internal/affinity"
	"github.com/corebench/corebench/internal/config"
	"github.com/corebench/corebench/internal/kernels"
	"github.com/corebench/corebench/internal/models"
	"github.com/corebench/corebench/internal/params"
	"github.com/corebench/corebench/internal/scoring"
	"github.com/corebench/corebench/internal/statistics"
	"github.com/corebench/corebench/internal/validate"
)

type state string

const (
	stateIdle       state = "idle"
	stateWarmUp     state = "warm_up"
	stateSingleCore state = "single_core_suite"
	stateMultiCore  state = "multi_core_suite"
	stateDone       state = "done"
)

// Runner drives one benchmark run. Construct with New, configure with
// options, then call Run exactly once.
type Runner struct {
	cfg      *config.RunConfig
	scorer   scoring.Scorer
	ctrl     affinity.Controller
	topo     affinity.Topology
	hold     PerformanceHold
	registry []kernels.Kernel

	mu        sync.Mutex
	listeners []ProgressListener
	events    chan<- ProgressEvent

	state      state
	pinFailed  bool
	prioFailed bool
}

// Option configures a Runner at construction.
type Option func(*Runner)

// WithController replaces the platform affinity controller.
func WithController(c affinity.Controller) Option {
	return func(r *Runner) { r.ctrl = c }
}

// WithTopology replaces the detected CPU topology.
func WithTopology(t affinity.Topology) Option {
	return func(r *Runner) { r.topo = t }
}

// WithHold installs a platform performance hold.
func WithHold(h PerformanceHold) Option {
	return func(r *Runner) { r.hold = h }
}

// WithKernels replaces the measured kernel set. Order is preserved in
// the output.
func WithKernels(ks []kernels.Kernel) Option {
	return func(r *Runner) { r.registry = ks }
}

// WithEventChannel installs a channel receiving progress events. Sends
// never block; events are dropped when the channel is full.
func WithEventChannel(ch chan<- ProgressEvent) Option {
	return func(r *Runner) { r.events = ch }
}

// New builds a Runner for the given configuration.
func New(cfg *config.RunConfig, opts ...Option) (*Runner, error) {
	scorer, err := scoring.New(cfg.Table())
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}
	r := &Runner{
		cfg:      cfg,
		scorer:   scorer,
		ctrl:     affinity.NewController(),
		topo:     affinity.Detect(),
		hold:     NoopHold{},
		registry: kernels.Registry,
		state:    stateIdle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// AddListener registers a progress listener. Safe to call before Run.
func (r *Runner) AddListener(l ProgressListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Degraded reports whether affinity or priority control failed during
// the run.
func (r *Runner) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pinFailed || r.prioFailed
}

// Run executes the whole state machine and returns the immutable
// summary. The context cancels between kernels, never inside one.
func (r *Runner) Run(ctx context.Context) (*models.RunSummary, error) {
	workload, err := params.ForTier(r.cfg.Tier())
	if err != nil {
		return nil, fmt.Errorf("resolving workload: %w", err)
	}
	warm, err := params.ForTier(params.TierWarmup)
	if err != nil {
		return nil, fmt.Errorf("resolving warm-up workload: %w", err)
	}

	start := time.Now()
	r.emit(ProgressEvent{Type: EventSuiteStarted, Total: len(r.registry) * 2})

	if err := r.runWarmup(ctx, warm); err != nil {
		return nil, err
	}

	if err := r.hold.Acquire(); err != nil {
		slog.Warn("performance hold unavailable", "error", err)
	}
	defer r.hold.Release()

	single, err := r.runSingleCore(ctx, workload)
	if err != nil {
		return nil, err
	}
	multi, err := r.runMultiCore(ctx, workload)
	if err != nil {
		return nil, err
	}

	r.setState(stateDone)
	summary := r.buildSummary(workload, single, multi, time.Since(start))
	r.emit(ProgressEvent{Type: EventSuiteComplete, Total: len(r.registry) * 2})
	return summary, nil
}

func (r *Runner) setState(s state) {
	slog.Debug("suite state transition", "from", r.state, "to", s)
	r.state = s
}

func (r *Runner) runWarmup(ctx context.Context, warm params.Workload) error {
	r.setState(stateWarmUp)
	r.emit(ProgressEvent{Type: EventWarmupStarted})
	for _, k := range r.registry {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Results are discarded; warm-up exists to settle clocks and
		// caches before anything is measured.
		if _, err := safeInvoke(k, warm); err != nil {
			slog.Warn("warm-up kernel failed", "kernel", k.ID, "error", err)
		}
	}
	r.emit(ProgressEvent{Type: EventWarmupComplete})
	return nil
}

func (r *Runner) runSingleCore(ctx context.Context, w params.Workload) ([]models.KernelResult, error) {
	r.setState(stateSingleCore)
	r.emit(ProgressEvent{Type: EventPhaseStarted, Mode: models.ModeSingleCore})

	total := len(r.registry) * 2
	results := make([]models.KernelResult, 0, len(r.registry))
	warnedPin := false
	for i, k := range r.registry {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.emit(ProgressEvent{
			Type: EventKernelStarted, Kernel: k.ID, Name: k.DisplayName,
			Mode: models.ModeSingleCore, Index: i + 1, Total: total,
		})

		kr := r.measurePinned(k, w, &warnedPin)
		results = append(results, kr)

		r.emit(ProgressEvent{
			Type: EventKernelComplete, Kernel: k.ID, Name: k.DisplayName,
			Mode: models.ModeSingleCore, Index: i + 1, Total: total,
			Valid: kr.IsValid, Error: kr.Error, ElapsedMs: kr.ExecutionTimeMs,
		})

		if i < len(r.registry)-1 {
			if err := r.cooldown(ctx); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// measurePinned runs one kernel on the prime core with elevated
// priority. The OS thread stays locked for the whole measurement so the
// goroutine cannot migrate off the pinned core.
func (r *Runner) measurePinned(k kernels.Kernel, w params.Workload, warned *bool) models.KernelResult {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := r.ctrl.PinToCore(r.topo.PrimeCore()); err != nil {
		r.setFailed(&r.pinFailed)
		if !*warned {
			slog.Warn("core pinning unavailable, measuring unpinned", "core", r.topo.PrimeCore(), "error", err)
			*warned = true
		}
	}
	if err := r.ctrl.ElevatePriority(); err != nil {
		r.setFailed(&r.prioFailed)
		slog.Debug("priority elevation unavailable", "error", err)
	}

	res, err := safeInvoke(k, w)

	if rerr := r.ctrl.ResetPriority(); rerr != nil {
		slog.Warn("restoring priority failed", "error", rerr)
	}
	if rerr := r.ctrl.ResetAffinity(); rerr != nil {
		slog.Warn("restoring affinity failed", "error", rerr)
	}

	return r.toKernelResult(k, models.ModeSingleCore, w, res, err)
}

func (r *Runner) runMultiCore(ctx context.Context, w params.Workload) ([]models.KernelResult, error) {
	r.setState(stateMultiCore)
	r.emit(ProgressEvent{Type: EventPhaseStarted, Mode: models.ModeMultiCore})

	workers := r.cfg.Workers()
	if workers <= 0 {
		workers = r.topo.WorkerCount()
	}
	total := len(r.registry) * 2
	results := make([]models.KernelResult, 0, len(r.registry))
	for i, k := range r.registry {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		index := len(r.registry) + i + 1
		r.emit(ProgressEvent{
			Type: EventKernelStarted, Kernel: k.ID, Name: k.DisplayName,
			Mode: models.ModeMultiCore, Index: index, Total: total,
		})

		kr := r.measureFanOut(ctx, k, w, workers)
		results = append(results, kr)

		r.emit(ProgressEvent{
			Type: EventKernelComplete, Kernel: k.ID, Name: k.DisplayName,
			Mode: models.ModeMultiCore, Index: index, Total: total,
			Valid: kr.IsValid, Error: kr.Error, ElapsedMs: kr.ExecutionTimeMs,
		})

		if i < len(r.registry)-1 {
			if err := r.cooldown(ctx); err != nil {
				return nil, err
			}
		}
	}
	return results, nil
}

// measureFanOut runs the same fixed workload on every worker and folds
// the results into one aggregate: total ops over the barrier's wall
// time, checksums XORed, valid only when every worker is valid.
func (r *Runner) measureFanOut(ctx context.Context, k kernels.Kernel, w params.Workload, workers int) models.KernelResult {
	worker := make([]kernels.Result, workers)
	g, _ := errgroup.WithContext(ctx)

	wallStart := time.Now()
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			res, err := safeInvoke(k, w)
			if err != nil {
				return err
			}
			worker[i] = res
			return nil
		})
	}
	err := g.Wait()
	wall := time.Since(wallStart)

	kr := models.KernelResult{
		ID:              k.ID,
		DisplayName:     k.DisplayName,
		Mode:            models.ModeMultiCore,
		ExecutionTimeMs: float64(wall.Nanoseconds()) / 1e6,
	}
	if err != nil {
		slog.Warn("kernel failed", "kernel", k.ID, "mode", models.ModeMultiCore, "error", err)
		kr.Error = err.Error()
		return kr
	}

	valid := true
	reason := ""
	for _, res := range worker {
		if ok, why := validate.Result(k.ID, w, res); !ok {
			valid = false
			reason = why
			break
		}
	}

	totalOps := lo.SumBy(worker, func(res kernels.Result) float64 { return res.Ops })
	checksum := lo.Reduce(worker, func(acc uint64, res kernels.Result, _ int) uint64 {
		return acc ^ res.Checksum
	}, 0)
	throughputs := lo.Map(worker, func(res kernels.Result, _ int) float64 {
		if res.Elapsed <= 0 {
			return 0
		}
		return res.Ops / res.Elapsed.Seconds()
	})
	spread := statistics.Summarize(throughputs)

	kr.Checksum = checksum
	kr.IsValid = valid
	kr.Error = reason
	if wall > 0 {
		kr.OpsPerSecond = totalOps / wall.Seconds()
	}
	kr.Metrics = map[string]any{
		"workers":            workers,
		"worker_ops_sec_min": spread.Min,
		"worker_ops_sec_max": spread.Max,
		"worker_ops_sec_avg": spread.Mean,
		"worker_ops_sec_dev": spread.StdDev,
	}
	if !valid {
		kr.OpsPerSecond = 0
	}
	return kr
}

func (r *Runner) toKernelResult(k kernels.Kernel, mode models.ExecutionMode, w params.Workload, res kernels.Result, err error) models.KernelResult {
	kr := models.KernelResult{
		ID:          k.ID,
		DisplayName: k.DisplayName,
		Mode:        mode,
	}
	if err != nil {
		slog.Warn("kernel failed", "kernel", k.ID, "mode", mode, "error", err)
		kr.Error = err.Error()
		return kr
	}

	kr.ExecutionTimeMs = float64(res.Elapsed.Nanoseconds()) / 1e6
	kr.Checksum = res.Checksum
	kr.Metrics = res.Metrics
	if ok, reason := validate.Result(k.ID, w, res); !ok {
		slog.Warn("kernel result invalid", "kernel", k.ID, "mode", mode, "reason", reason)
		kr.Error = reason
		return kr
	}
	kr.IsValid = true
	kr.OpsPerSecond = res.Ops / res.Elapsed.Seconds()
	return kr
}

func (r *Runner) cooldown(ctx context.Context) error {
	d := r.cfg.Cooldown()
	if d <= 0 {
		return nil
	}
	r.emit(ProgressEvent{Type: EventCooldown, ElapsedMs: float64(d.Milliseconds())})
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) buildSummary(w params.Workload, single, multi []models.KernelResult, elapsed time.Duration) *models.RunSummary {
	singleScore := r.scorer.Composite(models.ModeSingleCore, single)
	multiScore := r.scorer.Composite(models.ModeMultiCore, multi)
	final := scoring.FinalScore(singleScore, multiScore)

	ratio := 0.0
	if singleScore > 0 {
		ratio = multiScore / singleScore
	}

	workers := r.cfg.Workers()
	if workers <= 0 {
		workers = r.topo.WorkerCount()
	}
	if workers > 1 && multiScore <= singleScore {
		slog.Warn("multi-core composite did not exceed single-core",
			"single", singleScore, "multi", multiScore, "workers", workers)
	}

	all := make([]models.KernelResult, 0, len(single)+len(multi))
	all = append(all, single...)
	all = append(all, multi...)

	r.mu.Lock()
	pinFailed, prioFailed := r.pinFailed, r.prioFailed
	r.mu.Unlock()

	return &models.RunSummary{
		RunID:     fmt.Sprintf("run-%d", time.Now().Unix()),
		Timestamp: time.Now().UTC(),
		Setup: models.RunSetup{
			Tier:             string(w.Tier),
			LogicalCores:     r.topo.Logical,
			BigCores:         r.topo.BigCores,
			PrimeCore:        r.topo.PrimeCore(),
			Workers:          workers,
			Pinned:           !pinFailed,
			PriorityElevated: !prioFailed,
			ScoringMethod:    string(r.scorer.Method()),
			CooldownMs:       r.cfg.Cooldown().Milliseconds(),
		},
		SingleCoreScore: singleScore,
		MultiCoreScore:  multiScore,
		FinalScore:      final,
		CoreRatio:       ratio,
		Rating:          scoring.RatingFor(r.scorer.Method(), final),
		Degraded:        pinFailed || prioFailed,
		DurationMs:      elapsed.Milliseconds(),
		KernelResults:   all,
	}
}

func (r *Runner) setFailed(flag *bool) {
	r.mu.Lock()
	*flag = true
	r.mu.Unlock()
}

func (r *Runner) emit(ev ProgressEvent) {
	r.mu.Lock()
	listeners := slices.Clone(r.listeners)
	ch := r.events
	r.mu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
	if ch != nil {
		select {
		case ch <- ev:
		default:
			// Slow consumers lose events rather than stalling the run.
		}
	}
}

func safeInvoke(k kernels.Kernel, w params.Workload) (res kernels.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("kernel %s panicked: %v", k.ID, p)
		}
	}()
	return k.Run(w)
}
