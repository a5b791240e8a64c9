package wire

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cliadapter "github.com/example/govboard/internal/adapters/cli"
	"github.com/example/govboard/internal/config"
	"github.com/example/govboard/internal/db"
)

func TestNew_WiresServicesAgainstDatabase(t *testing.T) {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	c := New(&config.Config{HeatmapConcurrency: 2}, database)
	require.NotNil(t, c.HealthService)
	require.NotNil(t, c.EscalationService)
	require.NotNil(t, c.AnalyticsService)
	require.NotNil(t, c.SettingsService)

	score, err := c.HealthService.CalculatePortfolioHealthScore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, score.Total, "empty portfolio scores perfect")

	var buf bytes.Buffer
	_, err = c.SettingsAdapter(&buf, cliadapter.FormatTable).Get(context.Background(), config.KeyEscalationSLAHours)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "(default)"), buf.String())
}
