package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/domain"
	"github.com/Neoksnaman/ProTrack/internal/llm"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUseCase(t *testing.T) {
	m := New()
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "create-client", Success: true, Duration: 5 * time.Millisecond})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "create-client", Success: true})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "delete-user", Err: errors.New("referenced")})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.useCases.WithLabelValues("create-client", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.useCases.WithLabelValues("delete-user", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.useCaseDuration))
}

func TestOnCallComplete(t *testing.T) {
	m := New()

	m.OnCallComplete(llm.CallEvent{Task: llm.TaskProjectSummary, Success: true, Latency: time.Second})
	m.OnCallComplete(llm.CallEvent{Task: llm.TaskProjectSummary, ErrorCode: "TIMEOUT"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("project_summary", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("project_summary", "TIMEOUT")))
}

func TestWatchCache(t *testing.T) {
	m := New()
	c := cache.New(nil)
	c.AddUser(domain.User{ID: "USER-001", Name: "Alice"})
	c.AddClient(domain.Client{ID: "CLIENT-001", Name: "Acme"})
	c.AddClient(domain.Client{ID: "CLIENT-002", Name: "Globex"})

	m.WatchCache(c)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `protrack_cache_entities{kind="user"} 1`)
	assert.Contains(t, text, `protrack_cache_entities{kind="client"} 2`)
	assert.Contains(t, text, `protrack_cache_entities{kind="activity"} 0`)
	assert.Contains(t, text, "protrack_cache_loading 0")
}
