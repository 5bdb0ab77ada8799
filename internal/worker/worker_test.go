package worker

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"baziEngine/internal/filter"
	"baziEngine/internal/ganzhi"
	"baziEngine/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errOdd = errors.New("odd minute rejected")

// fakeAnalyzer：偶数年份日主为甲，奇数为乙；分钟为 1 时报错。
type fakeAnalyzer struct {
	block chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req model.BirthRequest) (*model.ChartResult, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if req.Minute == 1 {
		return nil, errOdd
	}
	stem := ganzhi.GanJia
	if req.Year%2 == 1 {
		stem = ganzhi.GanYi
	}
	return &model.ChartResult{Chart: model.Chart{Day: model.Pillar{Stem: stem}}}, nil
}

func feed(n int, minuteOf func(int) int) <-chan Job {
	ch := make(chan Job, n)
	for i := 1; i <= n; i++ {
		ch <- Job{Seq: i, Request: model.BirthRequest{Year: 1990 + i, Minute: minuteOf(i)}}
	}
	close(ch)
	return ch
}

func collect(results <-chan Result) []Result {
	var out []Result
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func TestPoolProcessesAll(t *testing.T) {
	jobs := feed(20, func(int) int { return 0 })
	results := make(chan Result, 4)
	p := NewPool(Config{Concurrency: 3}, &fakeAnalyzer{}, jobs, results)

	errc := make(chan error, 1)
	go func() { errc <- p.Run(context.Background()) }()
	got := collect(results)
	require.NoError(t, <-errc)

	require.Len(t, got, 20)
	for i, r := range got {
		assert.Equal(t, i+1, r.Seq)
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Chart)
	}
}

func TestPoolFiltersButKeepsErrors(t *testing.T) {
	jobs := feed(10, func(i int) int {
		if i == 4 {
			return 1
		}
		return 0
	})
	results := make(chan Result, 10)
	cfg := DefaultConfig()
	cfg.Filter = filter.DayMaster(ganzhi.GanJia)
	p := NewPool(cfg, &fakeAnalyzer{}, jobs, results)

	require.NoError(t, p.Run(context.Background()))
	got := collect(results)

	var seqs []int
	for _, r := range got {
		seqs = append(seqs, r.Seq)
		if r.Seq == 4 {
			assert.ErrorIs(t, r.Err, errOdd)
			assert.Nil(t, r.Chart)
		}
	}
	// 1990+i 为偶数 → i 为偶数；第 4 条报错照样输出
	assert.Equal(t, []int{2, 4, 6, 8, 10}, seqs)
}

func TestPoolCancel(t *testing.T) {
	jobs := make(chan Job)
	results := make(chan Result)
	block := make(chan struct{})
	p := NewPool(Config{Concurrency: 2}, &fakeAnalyzer{block: block}, jobs, results)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	jobs <- Job{Seq: 1}
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("pool did not stop after cancel")
	}
	for range results {
	}
	close(block)
}

func TestPoolJobTimeout(t *testing.T) {
	jobs := feed(1, func(int) int { return 0 })
	results := make(chan Result, 1)
	block := make(chan struct{})
	defer close(block)
	p := NewPool(Config{Concurrency: 1, JobTimeout: 20 * time.Millisecond}, &fakeAnalyzer{block: block}, jobs, results)

	require.NoError(t, p.Run(context.Background()))
	got := collect(results)
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0].Err, context.DeadlineExceeded)
}

func TestPoolPassesInputErrors(t *testing.T) {
	bad := errors.New("line 3: invalid json")
	jobs := make(chan Job, 1)
	jobs <- Job{Seq: 3, Err: bad}
	close(jobs)
	results := make(chan Result, 1)
	cfg := DefaultConfig()
	cfg.Filter = func(*model.ChartResult) bool { return false }

	require.NoError(t, NewPool(cfg, &fakeAnalyzer{}, jobs, results).Run(context.Background()))
	got := collect(results)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Seq)
	assert.ErrorIs(t, got[0].Err, bad)
}

func TestNewPoolPanics(t *testing.T) {
	ch := make(chan Job)
	out := make(chan Result)
	assert.Panics(t, func() { NewPool(Config{}, nil, ch, out) })
	assert.Panics(t, func() { NewPool(Config{}, &fakeAnalyzer{}, nil, out) })
}
