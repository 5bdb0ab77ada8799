package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"baziEngine/internal/filter"
	"baziEngine/internal/model"
	"baziEngine/internal/trace"
	"baziEngine/internal/worker"
)

// 通道与读入
const (
	jobChannelBuffer = 50
	maxLineBytes     = 1 << 20
)

var batchFlags struct {
	input       string
	output      string
	concurrency int
	spec        filter.Spec
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "批量排盘：每行一个 JSON 请求，每行输出一个结果",
	Long: `从 JSON Lines 读入排盘请求（字段：gender、birth_year、birth_month、
birth_day、birth_hour、birth_minute、longitude、birth_place、is_true_solar_time、id、name），
并发排盘后逐行输出 {"seq","id","name","result"|"error"}。空行与 # 开头的行跳过。
筛选条件只作用于成功的命盘，失败的请求总会输出。`,
	Example: `  bazi batch --input people.jsonl --marker 天乙 --missing 金
  cat people.jsonl | bazi batch --day-master 甲 > charts.jsonl`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.input, "input", "i", "-", "输入文件，- 为标准输入")
	f.StringVarP(&batchFlags.output, "output", "o", "-", "输出文件，- 为标准输出")
	f.IntVar(&batchFlags.concurrency, "concurrency", 0, "并发数（默认取 BAZI_CONCURRENCY）")
	f.StringSliceVar(&batchFlags.spec.Markers, "marker", nil, "只保留带该神煞的命盘，可多次给出（或）")
	f.StringSliceVar(&batchFlags.spec.Missing, "missing", nil, "只保留缺该五行的命盘，如 金（或）")
	f.StringVar(&batchFlags.spec.Dominant, "dominant", "", "只保留最旺五行为此的命盘")
	f.StringVar(&batchFlags.spec.DayMaster, "day-master", "", "只保留日主为此天干的命盘")
	f.BoolVar(&batchFlags.spec.Void, "void", false, "只保留有柱落空亡的命盘")
}

// batchLine 一行输出。
type batchLine struct {
	Seq    int                `json:"seq"`
	ID     string             `json:"id,omitempty"`
	Name   string             `json:"name,omitempty"`
	Error  string             `json:"error,omitempty"`
	Result *model.ChartResult `json:"result,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	crit, err := batchFlags.spec.Criterion()
	if err != nil {
		return err
	}
	in, closeIn, err := openInput(batchFlags.input)
	if err != nil {
		return err
	}
	defer closeIn()
	out, closeOut, err := openOutput(cmd, batchFlags.output)
	if err != nil {
		return err
	}
	defer closeOut()

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	nConc := conf().Concurrency
	if batchFlags.concurrency > 0 {
		nConc = batchFlags.concurrency
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf().BatchTimeout)
	defer cancel()
	ctx = trace.WithTraceID(ctx, trace.NewTraceID())
	trace.Log(ctx, "batch: start", "input", batchFlags.input, "concurrency", nConc, "job_timeout", conf().JobTimeout)

	jobs := make(chan worker.Job, jobChannelBuffer)
	results := make(chan worker.Result, jobChannelBuffer)
	pool := worker.NewPool(worker.Config{Concurrency: nConc, Filter: crit, JobTimeout: conf().JobTimeout}, a, jobs, results)

	var st batchStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		return produce(gctx, in, jobs, &st)
	})
	g.Go(func() error { return pool.Run(gctx) })
	g.Go(func() error { return consume(results, out, &st) })
	err = g.Wait()

	trace.Log(ctx, "batch: done", "read", st.read, "written", st.written, "failed", st.failed, "err", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("batch: timed out after %s: %w", conf().BatchTimeout, err)
	}
	return err
}

type batchStats struct {
	read    int
	written int
	failed  int
}

// produce 逐行读入并投递；解析失败的行带着错误投递，由 worker 原样输出。
func produce(ctx context.Context, r io.Reader, jobs chan<- worker.Job, st *batchStats) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		st.read++
		req, err := parseRequest([]byte(text))
		job := worker.Job{Seq: line, Request: req}
		if err != nil {
			job.Err = fmt.Errorf("line %d: %w", line, err)
		}
		select {
		case <-ctx.Done():
			trace.Log(ctx, "batch: ctx done", "produced", st.read)
			return ctx.Err()
		case jobs <- job:
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("batch: read input: %w", err)
	}
	return nil
}

// consume 写出全部结果；写失败后继续读空通道，让 Pool 能退出。
func consume(results <-chan worker.Result, w io.Writer, st *batchStats) error {
	bw := bufio.NewWriter(w)
	var werr error
	for r := range results {
		if werr != nil {
			continue
		}
		l := batchLine{Seq: r.Seq, ID: r.Request.ID, Name: r.Request.Name, Result: r.Chart}
		if r.Err != nil {
			l.Error = r.Err.Error()
			st.failed++
		}
		if werr = writeJSON(bw, l, false); werr == nil {
			st.written++
		}
	}
	if werr != nil {
		return fmt.Errorf("batch: write output: %w", werr)
	}
	return bw.Flush()
}

// parseRequest 解析一行 JSON 请求。年月日缺失即报错，其余字段的合法性交给排盘校验。
func parseRequest(line []byte) (model.BirthRequest, error) {
	if !gjson.ValidBytes(line) {
		return model.BirthRequest{}, errors.New("invalid json")
	}
	v := gjson.ParseBytes(line)
	if !v.IsObject() {
		return model.BirthRequest{}, errors.New("request must be a json object")
	}
	req := model.BirthRequest{
		ID:            v.Get("id").String(),
		Name:          v.Get("name").String(),
		Gender:        model.Gender(strings.ToLower(strings.TrimSpace(v.Get("gender").String()))),
		Hour:          int(v.Get("birth_hour").Int()),
		Minute:        int(v.Get("birth_minute").Int()),
		Second:        int(v.Get("birth_second").Int()),
		BirthPlace:    strings.TrimSpace(v.Get("birth_place").String()),
		TrueSolarTime: v.Get("is_true_solar_time").Bool(),
	}
	for _, f := range []struct {
		key string
		dst *int
	}{{"birth_year", &req.Year}, {"birth_month", &req.Month}, {"birth_day", &req.Day}} {
		x := v.Get(f.key)
		if !x.Exists() {
			return req, fmt.Errorf("missing %s", f.key)
		}
		*f.dst = int(x.Int())
	}
	// longitude 为 null 视同未给出；给了但不是数字按输入错误处理，不静默跳过修正
	switch x := v.Get("longitude"); {
	case !x.Exists() || x.Type == gjson.Null:
	case x.Type == gjson.Number:
		lng := x.Float()
		req.Longitude = &lng
	default:
		return req, fmt.Errorf("longitude must be a number, got %s", x.Raw)
	}
	return req, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("batch: open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("batch: create output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
