// Package config 从 YAML 文件或环境变量加载运行配置。
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置路径与环境变量名
const (
	defaultConfigPath = "config.yaml"
	envConfigPath     = "BAZI_CONFIG_PATH"
	envLogMode        = "BAZI_LOG_MODE"
	envConcurrency    = "BAZI_CONCURRENCY"
	envFortunePeriods = "BAZI_FORTUNE_PERIODS"
	envGazetteer      = "BAZI_GAZETTEER"
	envBatchTimeout   = "BAZI_BATCH_TIMEOUT"
	envJobTimeout     = "BAZI_JOB_TIMEOUT"
)

// 默认值
const (
	defaultLogMode        = "dev"
	defaultConcurrency    = 4
	defaultFortunePeriods = 8
	maxFortunePeriods     = 8
	defaultBatchTimeout   = 10 * time.Minute
)

type Config struct {
	LogMode        string        `yaml:"log_mode"`
	Concurrency    int           `yaml:"concurrency"`
	FortunePeriods int           `yaml:"fortune_periods"`
	GazetteerPath  string        `yaml:"gazetteer_path"` // 为空时用内置地名库
	BatchTimeout   time.Duration `yaml:"batch_timeout"`
	JobTimeout     time.Duration `yaml:"job_timeout"` // 单条排盘超时，0 为不限
}

// Load 先读 envConfigPath 指定文件（默认 config.yaml，不存在不报错），再被环境变量覆盖，最后补默认值。
func Load() *Config {
	cfg := &Config{}
	configPath := os.Getenv(envConfigPath)
	if configPath == "" {
		configPath = defaultConfigPath
	}
	if b, err := os.ReadFile(configPath); err == nil {
		_ = yaml.Unmarshal(b, cfg)
	}
	if v := os.Getenv(envLogMode); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv(envConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv(envFortunePeriods); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FortunePeriods = n
		}
	}
	if v := os.Getenv(envGazetteer); v != "" {
		cfg.GazetteerPath = v
	}
	if v := os.Getenv(envBatchTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.BatchTimeout = d
		}
	}
	if v := os.Getenv(envJobTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JobTimeout = d
		}
	}

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.LogMode = strings.TrimSpace(c.LogMode)
	if c.LogMode == "" {
		c.LogMode = defaultLogMode
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	switch {
	case c.FortunePeriods <= 0:
		c.FortunePeriods = defaultFortunePeriods
	case c.FortunePeriods > maxFortunePeriods:
		c.FortunePeriods = maxFortunePeriods
	}
	c.GazetteerPath = strings.TrimSpace(c.GazetteerPath)
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaultBatchTimeout
	}
	if c.JobTimeout < 0 {
		c.JobTimeout = 0
	}
}
