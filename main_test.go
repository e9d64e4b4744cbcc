package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neptune-T/OS-Simulation-Platform/api"
	"github.com/neptune-T/OS-Simulation-Platform/config"
	"github.com/neptune-T/OS-Simulation-Platform/internal/logger"
	"github.com/neptune-T/OS-Simulation-Platform/internal/metrics"
	"github.com/neptune-T/OS-Simulation-Platform/internal/responses"
)

func TestApplyConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	handler := api.NewSchedulerHandlerImpl(cfg, metrics.NewPrometheusMetrics(), nil)
	app := fiber.New()
	handler.Register(app.Group("/api/v1"))

	reloaded, err := config.Load("")
	require.NoError(t, err)
	reloaded.RoundRobinTimeQuantum = 1
	reloaded.Logging.Level = "debug"
	reloaded.Logging.Output = filepath.Join(t.TempDir(), "ossim.log")
	t.Cleanup(func() { _ = logger.Close() })

	applyConfig(handler)(reloaded)
	assert.Equal(t, logrus.DebugLevel, logger.GetLogger().GetLevel())

	body := `{"jobs":[{"process_id":1,"arrival_time":0,"burst_time":2},{"process_id":2,"arrival_time":0,"burst_time":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rr", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response responses.ScheduleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	// quantum 1 alternates the two processes every unit
	assert.Equal(t, 3, response.ContextSwitches)

	data, err := os.ReadFile(reloaded.Logging.Output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configuration reloaded")
	assert.Contains(t, string(data), "schedule completed")
}
