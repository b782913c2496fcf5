//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	redisgo "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	redisadapter "github.com/stormpetrel/bomwatch/internal/adapter/redis"
	"github.com/stormpetrel/bomwatch/internal/domain"
)

// startRedis spins up a throwaway Redis container and returns a connected
// Store pointed at it, plus a raw client for seeding keys the UI
// collaborator would normally write.
func startRedis(ctx context.Context, t *testing.T) (*redisadapter.Store, *redisgo.Client) {
	t.Helper()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start redis container")

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)

	store, err := redisadapter.NewStore(uri, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(ctx))

	opt, err := redisgo.ParseURL(uri)
	require.NoError(t, err)
	raw := redisgo.NewClient(opt)
	t.Cleanup(func() { _ = raw.Close() })

	return store, raw
}

func TestStoreResultRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store, _ := startRedis(ctx, t)

	// Nothing persisted yet.
	_, found, err := store.LastResult(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	checkedAt := time.Date(2025, 2, 24, 6, 0, 0, 0, time.UTC)
	saved := domain.CheckResult{
		CheckedAt:    checkedAt,
		AlertCount:   1,
		Region:       domain.RegionACT,
		LocationName: "Canberra",
		Warnings: []domain.Warning{{
			ID:       "http://www.bom.gov.au/products/IDN21037.shtml",
			Title:    "Severe Thunderstorm Warning for NSW",
			Link:     "http://www.bom.gov.au/products/IDN21037.shtml",
			Region:   domain.RegionACT,
			Type:     domain.TypeSevereThunderstorm,
			Severity: domain.SeveritySevere,
			Origin:   "feed",
		}},
		DebugLog: []string{"checking warnings for Canberra, ACT (-35.2800, 149.1300)"},
	}
	require.NoError(t, store.SaveResult(ctx, saved))

	got, found, err := store.LastResult(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.CheckedAt.Equal(checkedAt))
	assert.Equal(t, saved.AlertCount, got.AlertCount)
	assert.Equal(t, saved.Region, got.Region)
	assert.Equal(t, saved.LocationName, got.LocationName)
	assert.Equal(t, saved.Warnings, got.Warnings)
	assert.Equal(t, saved.DebugLog, got.DebugLog)

	// Clearing makes LastResult come back empty-handed again.
	require.NoError(t, store.ClearResults(ctx))
	_, found, err = store.LastResult(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreLocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store, raw := startRedis(ctx, t)

	// Absent location is not an error.
	_, _, has, err := store.Location(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	// Seed the keys the way the UI collaborator writes them: plain strings.
	require.NoError(t, raw.Set(ctx, "latitude", "-35.28", 0).Err())
	require.NoError(t, raw.Set(ctx, "longitude", "149.13", 0).Err())
	require.NoError(t, raw.Set(ctx, "locationName", "Canberra", 0).Err())

	coord, name, has, err := store.Location(ctx)
	require.NoError(t, err)
	require.True(t, has)
	assert.InDelta(t, -35.28, coord.Lat, 1e-9)
	assert.InDelta(t, 149.13, coord.Lon, 1e-9)
	assert.Equal(t, "Canberra", name)
}

func TestStoreWarningDetail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store, _ := startRedis(ctx, t)

	w := domain.Warning{
		ID:       "NSW-0a1b2c3d4e5f6071",
		Title:    "Flood Warning for the Bellinger River",
		Link:     "http://www.bom.gov.au/nsw/warnings/",
		Region:   domain.RegionNSW,
		Type:     domain.TypeFlood,
		Severity: domain.SeverityModerate,
		Origin:   "feed",
	}
	require.NoError(t, store.SaveWarning(ctx, w))

	got, found, err := store.WarningByID(ctx, w.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, w, got)

	_, found, err = store.WarningByID(ctx, "no-such-warning")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStoreDebugLogOnly(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	store, _ := startRedis(ctx, t)

	require.NoError(t, store.SaveDebugLog(ctx, []string{"read location: dial tcp: refused"}))

	// A debug log alone must not make LastResult claim a completed check.
	_, found, err := store.LastResult(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}
