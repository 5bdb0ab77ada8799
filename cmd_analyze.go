package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"baziEngine/internal/model"
	"baziEngine/internal/trace"
)

var analyzeFlags struct {
	gender    string
	year      int
	month     int
	day       int
	hour      int
	minute    int
	second    int
	longitude float64
	place     string
	trueSolar bool
	name      string
	pretty    bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "单次排盘，输出 JSON",
	Example: `  bazi analyze --gender male --year 1990 --month 1 --day 1 --hour 0
  bazi analyze --gender female --year 1985 --month 6 --day 12 --hour 14 --minute 30 --place 成都`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.gender, "gender", "", "性别 male|female")
	f.IntVar(&analyzeFlags.year, "year", 0, "公历年")
	f.IntVar(&analyzeFlags.month, "month", 0, "公历月")
	f.IntVar(&analyzeFlags.day, "day", 0, "公历日")
	f.IntVar(&analyzeFlags.hour, "hour", 0, "时（0~23）")
	f.IntVar(&analyzeFlags.minute, "minute", 0, "分")
	f.IntVar(&analyzeFlags.second, "second", 0, "秒")
	f.Float64Var(&analyzeFlags.longitude, "lng", 0, "出生地经度，东经为正；给出时优先于 --place")
	f.StringVar(&analyzeFlags.place, "place", "", "出生地名称，用于查经度做真太阳时修正")
	f.BoolVar(&analyzeFlags.trueSolar, "true-solar", false, "输入已是真太阳时，不再修正")
	f.StringVar(&analyzeFlags.name, "name", "", "姓名（仅回显）")
	f.BoolVar(&analyzeFlags.pretty, "pretty", false, "缩进输出")
	_ = analyzeCmd.MarkFlagRequired("gender")
	_ = analyzeCmd.MarkFlagRequired("year")
	_ = analyzeCmd.MarkFlagRequired("month")
	_ = analyzeCmd.MarkFlagRequired("day")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req := model.BirthRequest{
		Name:          analyzeFlags.name,
		Gender:        model.Gender(analyzeFlags.gender),
		Year:          analyzeFlags.year,
		Month:         analyzeFlags.month,
		Day:           analyzeFlags.day,
		Hour:          analyzeFlags.hour,
		Minute:        analyzeFlags.minute,
		Second:        analyzeFlags.second,
		BirthPlace:    analyzeFlags.place,
		TrueSolarTime: analyzeFlags.trueSolar,
	}
	if cmd.Flags().Changed("lng") {
		lng := analyzeFlags.longitude
		req.Longitude = &lng
	}

	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	ctx := trace.WithTraceID(context.Background(), trace.NewTraceID())
	res, err := a.Analyze(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res, analyzeFlags.pretty)
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
