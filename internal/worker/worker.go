// Package worker 提供批量排盘任务池：消费排盘请求、并发排盘、按条件过滤后输出。
package worker

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"baziEngine/internal/filter"
	"baziEngine/internal/model"
	"baziEngine/internal/trace"
)

const defaultConcurrency = 4

// Analyzer 排盘能力，bazi.Analyzer 即是一个实现。
type Analyzer interface {
	Analyze(ctx context.Context, req model.BirthRequest) (*model.ChartResult, error)
}

// Job 一条请求，Seq 为输入中的序号（从 1 计），用于输出对齐。
// Err 非空表示输入本身解析失败，不排盘，直接作为失败结果输出。
type Job struct {
	Seq     int
	Request model.BirthRequest
	Err     error
}

// Result 一条输出。Err 非空时 Chart 为 nil；失败的请求总会输出，不经过 Filter。
type Result struct {
	Seq     int
	Request model.BirthRequest
	Chart   *model.ChartResult
	Err     error
}

// Config 控制并发数与筛选逻辑。
type Config struct {
	Concurrency int
	Filter      filter.Criterion
	// JobTimeout 单条排盘超时，0 为不限
	JobTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{Concurrency: defaultConcurrency, Filter: filter.All}
}

// Pool 从 jobs 取请求排盘，经 Filter 通过后写入 results。Run 结束时关闭 results。
type Pool struct {
	cfg      Config
	analyzer Analyzer
	jobs     <-chan Job
	out      chan<- Result
	filter   filter.Criterion
}

func NewPool(cfg Config, analyzer Analyzer, jobs <-chan Job, results chan<- Result) *Pool {
	if analyzer == nil {
		panic("worker: analyzer must not be nil")
	}
	if jobs == nil || results == nil {
		panic("worker: jobs and results channels must not be nil")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.Filter == nil {
		cfg.Filter = filter.All
	}
	return &Pool{
		cfg:      cfg,
		analyzer: analyzer,
		jobs:     jobs,
		out:      results,
		filter:   cfg.Filter,
	}
}

// Run 阻塞到 jobs 关闭且全部处理完，或 ctx 取消；取消时返回 ctx 的错误。
func (p *Pool) Run(ctx context.Context) error {
	trace.Log(ctx, "worker: Pool.Run start", "concurrency", p.cfg.Concurrency)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.cfg.Concurrency; i++ {
		id := i
		g.Go(func() error { return p.runWorker(gctx, id) })
	}
	err := g.Wait()
	close(p.out)
	trace.Log(ctx, "worker: Pool.Run done", "err", err)
	return err
}

func (p *Pool) runWorker(ctx context.Context, workerID int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-p.jobs:
			if !ok {
				return nil
			}
			res, keep := p.analyze(ctx, workerID, job)
			if !keep {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case p.out <- res:
			}
		}
	}
}

func (p *Pool) analyze(ctx context.Context, workerID int, job Job) (Result, bool) {
	if job.Err != nil {
		return Result{Seq: job.Seq, Request: job.Request, Err: job.Err}, true
	}
	id := job.Request.ID
	if id == "" {
		id = trace.NewTraceID()
	}
	jctx := trace.WithTraceID(ctx, id)
	if p.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		jctx, cancel = context.WithTimeout(jctx, p.cfg.JobTimeout)
		defer cancel()
	}

	chart, err := p.analyzer.Analyze(jctx, job.Request)
	res := Result{Seq: job.Seq, Request: job.Request, Chart: chart, Err: err}
	if err != nil {
		trace.Warn(jctx, "worker: analyze failed", "worker", workerID, "seq", job.Seq, "err", err)
		return res, true
	}
	return res, p.filter(chart)
}
