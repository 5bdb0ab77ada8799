// Package trace 在 context 中传递 trace ID，Log 时每行带 trace=id 便于排查。
// 日志底层为 zap，默认 Nop，main 启动时 Init。
package trace

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey int

const traceIDKey ctxKey = 0

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}

// NewTraceID 取 UUID 前 8 位，足够在单次运行的日志里区分请求。
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

var (
	logMu  sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// New 按模式构建 zap logger：prod 为 JSON、Info 级；off 不输出；其余为开发模式、Debug 级。
func New(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "off", "none", "quiet":
		return zap.NewNop().Sugar(), nil
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Init 以 mode 构建并替换全局 logger，返回的函数用于退出前 Sync。
func Init(mode string) (func(), error) {
	l, err := New(mode)
	if err != nil {
		return func() {}, err
	}
	SetLogger(l)
	return func() { _ = l.Sync() }, nil
}

func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// L 返回带 trace 字段的 logger。
func L(ctx context.Context) *zap.SugaredLogger {
	logMu.RLock()
	l := logger
	logMu.RUnlock()
	id := TraceID(ctx)
	if id == "" {
		id = "-"
	}
	return l.With("trace", id)
}

// Log 打 Info 日志，kv 为成对的键值。
func Log(ctx context.Context, msg string, kv ...interface{}) { L(ctx).Infow(msg, kv...) }

func Warn(ctx context.Context, msg string, kv ...interface{}) { L(ctx).Warnw(msg, kv...) }

func Debug(ctx context.Context, msg string, kv ...interface{}) { L(ctx).Debugw(msg, kv...) }
