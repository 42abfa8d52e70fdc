package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Zero(t, cfg.MaxRetries, "summaries are never retried")
	for _, task := range TaskTypes {
		assert.Contains(t, cfg.Tasks, task)
	}
	assert.Equal(t, cfg.Timeout, cfg.TaskTimeout(TaskRiskAssessment))
	assert.Equal(t, 30*time.Second, cfg.TaskTimeout(TaskProjectSummary))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	env := map[string]string{
		"PROTRACK_LLM_ENABLED":                    "true",
		"PROTRACK_LLM_ENDPOINT":                   "http://ollama:11434/",
		"PROTRACK_LLM_MODEL":                      "qwen2.5",
		"PROTRACK_LLM_TIMEOUT_MS":                 "1500",
		"PROTRACK_LLM_MAX_RETRIES":                "2",
		"PROTRACK_LLM_RISK_ASSESSMENT_TIMEOUT_MS": "900",
	}
	cfg := loadConfig(DefaultConfig(), func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://ollama:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 900*time.Millisecond, cfg.TaskTimeout(TaskRiskAssessment))
}

func TestLoadConfig_IgnoresGarbage(t *testing.T) {
	env := map[string]string{
		"PROTRACK_LLM_ENABLED":     "maybe",
		"PROTRACK_LLM_TIMEOUT_MS":  "-5",
		"PROTRACK_LLM_MAX_RETRIES": "lots",
	}
	def := DefaultConfig()
	cfg := loadConfig(def, func(k string) string { return env[k] })
	assert.Equal(t, def.Enabled, cfg.Enabled)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, def.MaxRetries, cfg.MaxRetries)
}
