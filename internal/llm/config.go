package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TaskType identifies the kind of generation being requested.
type TaskType string

const (
	TaskProjectSummary TaskType = "project_summary"
	TaskSuggestions    TaskType = "suggestions"
	TaskRiskAssessment TaskType = "risk_assessment"
)

var TaskTypes = []TaskType{TaskProjectSummary, TaskSuggestions, TaskRiskAssessment}

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	// Timeout overrides Config.Timeout when positive.
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds everything the Ollama client needs.
type Config struct {
	Enabled    bool                    `yaml:"enabled"`
	LogCalls   bool                    `yaml:"log_calls"`
	Endpoint   string                  `yaml:"endpoint"`
	Model      string                  `yaml:"model"`
	Timeout    time.Duration           `yaml:"timeout"`
	MaxRetries int                     `yaml:"max_retries"`
	Tasks      map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig is disabled and never retries.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://localhost:11434",
		Model:    "llama3.2",
		Timeout:  20 * time.Second,
		Tasks: map[TaskType]TaskConfig{
			TaskProjectSummary: {Temperature: 0.3, MaxTokens: 1024, Timeout: 30 * time.Second},
			TaskSuggestions:    {Temperature: 0.4, MaxTokens: 1536, Timeout: 30 * time.Second},
			TaskRiskAssessment: {Temperature: 0.2, MaxTokens: 768},
		},
	}
}

// LoadConfig applies PROTRACK_LLM_* environment variables over cfg.
// Unparseable values are ignored.
func LoadConfig(cfg Config) Config {
	return loadConfig(cfg, os.Getenv)
}

func loadConfig(cfg Config, getenv func(string) string) Config {
	if v, err := strconv.ParseBool(getenv("PROTRACK_LLM_ENABLED")); err == nil {
		cfg.Enabled = v
	}
	if v, err := strconv.ParseBool(getenv("PROTRACK_LLM_LOG_CALLS")); err == nil {
		cfg.LogCalls = v
	}
	if v := getenv("PROTRACK_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := getenv("PROTRACK_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if d, ok := positiveMillis(getenv("PROTRACK_LLM_TIMEOUT_MS")); ok {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(getenv("PROTRACK_LLM_MAX_RETRIES")); err == nil && n >= 0 {
		cfg.MaxRetries = n
	}

	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	for _, task := range TaskTypes {
		d, ok := positiveMillis(getenv("PROTRACK_LLM_" + strings.ToUpper(string(task)) + "_TIMEOUT_MS"))
		if !ok {
			continue
		}
		tc := cfg.Tasks[task]
		tc.Timeout = d
		cfg.Tasks[task] = tc
	}
	return cfg
}

func positiveMillis(v string) (time.Duration, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * time.Millisecond, true
}

// TaskTimeout is the task's own timeout if set, else the global one.
func (c Config) TaskTimeout(task TaskType) time.Duration {
	if tc, ok := c.Tasks[task]; ok && tc.Timeout > 0 {
		return tc.Timeout
	}
	return c.Timeout
}
