package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redisgo "github.com/redis/go-redis/v9"

	"github.com/stormpetrel/bomwatch/internal/domain"
)

// Store keys. The location keys are written by the UI collaborator and only
// read here; the result keys are overwritten wholesale every check cycle.
const (
	keyLatitude     = "latitude"
	keyLongitude    = "longitude"
	keyLocationName = "locationName"

	keyLastCheck  = "lastCheck"
	keyAlertCount = "alertCount"
	keyState      = "state"
	keyWarnings   = "warnings"
	keyDebugLog   = "debugLog"

	warningKeyPrefix = "warning_"
)

// Store persists check results and per-warning detail in Redis, and reads
// back the user's saved location.
type Store struct {
	client     *redisgo.Client
	warningTTL time.Duration
}

// NewStore connects to Redis using a redis:// URL. Plain host:port addresses
// are accepted too.
func NewStore(redisURL string, warningTTL time.Duration) (*Store, error) {
	opt, err := redisgo.ParseURL(redisURL)
	if err != nil {
		opt = &redisgo.Options{Addr: redisURL}
	}
	return &Store{
		client:     redisgo.NewClient(opt),
		warningTTL: warningTTL,
	}, nil
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// Location reads the user's saved coordinate and optional friendly name.
// The boolean is false when no coordinate is stored.
func (s *Store) Location(ctx context.Context) (domain.Coordinate, string, bool, error) {
	vals, err := s.client.MGet(ctx, keyLatitude, keyLongitude, keyLocationName).Result()
	if err != nil {
		return domain.Coordinate{}, "", false, fmt.Errorf("read location: %w", err)
	}

	lat, okLat := parseFloatValue(vals[0])
	lon, okLon := parseFloatValue(vals[1])
	if !okLat || !okLon {
		return domain.Coordinate{}, "", false, nil
	}

	name := ""
	if str, ok := vals[2].(string); ok {
		name = str
	}

	return domain.Coordinate{Lat: lat, Lon: lon}, name, true, nil
}

// SaveResult overwrites the per-cycle summary keys in one pipelined write.
func (s *Store) SaveResult(ctx context.Context, result domain.CheckResult) error {
	warningsJSON, err := json.Marshal(resultWarnings(result))
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}
	debugJSON, err := json.Marshal(resultDebugLog(result))
	if err != nil {
		return fmt.Errorf("marshal debug log: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyLastCheck, result.CheckedAt.UTC().Format(time.RFC3339), 0)
	pipe.Set(ctx, keyAlertCount, result.AlertCount, 0)
	pipe.Set(ctx, keyState, string(result.Region), 0)
	pipe.Set(ctx, keyLocationName, result.LocationName, 0)
	pipe.Set(ctx, keyWarnings, warningsJSON, 0)
	pipe.Set(ctx, keyDebugLog, debugJSON, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save check result: %w", err)
	}
	return nil
}

// SaveDebugLog persists only the debug log, used on the failure path when a
// cycle aborts before producing a full result.
func (s *Store) SaveDebugLog(ctx context.Context, lines []string) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal debug log: %w", err)
	}
	if err := s.client.Set(ctx, keyDebugLog, data, 0).Err(); err != nil {
		return fmt.Errorf("save debug log: %w", err)
	}
	return nil
}

// LastResult reads back the most recent summary. The boolean is false when
// no check has been persisted yet.
func (s *Store) LastResult(ctx context.Context) (domain.CheckResult, bool, error) {
	vals, err := s.client.MGet(ctx, keyLastCheck, keyAlertCount, keyState, keyLocationName, keyWarnings, keyDebugLog).Result()
	if err != nil {
		return domain.CheckResult{}, false, fmt.Errorf("read check result: %w", err)
	}

	lastCheck, ok := vals[0].(string)
	if !ok {
		return domain.CheckResult{}, false, nil
	}
	checkedAt, err := time.Parse(time.RFC3339, lastCheck)
	if err != nil {
		return domain.CheckResult{}, false, fmt.Errorf("parse lastCheck: %w", err)
	}

	result := domain.CheckResult{
		CheckedAt: checkedAt,
		Warnings:  []domain.Warning{},
	}
	if str, ok := vals[1].(string); ok {
		if n, err := strconv.Atoi(str); err == nil {
			result.AlertCount = n
		}
	}
	if str, ok := vals[2].(string); ok {
		result.Region = domain.Region(str)
	}
	if str, ok := vals[3].(string); ok {
		result.LocationName = str
	}
	if str, ok := vals[4].(string); ok && str != "" {
		if err := json.Unmarshal([]byte(str), &result.Warnings); err != nil {
			return domain.CheckResult{}, false, fmt.Errorf("unmarshal warnings: %w", err)
		}
	}
	if str, ok := vals[5].(string); ok && str != "" {
		if err := json.Unmarshal([]byte(str), &result.DebugLog); err != nil {
			return domain.CheckResult{}, false, fmt.Errorf("unmarshal debug log: %w", err)
		}
	}

	return result, true, nil
}

// SaveWarning persists per-warning detail for later lookup when a
// notification is clicked. Detail keys expire after the configured TTL.
func (s *Store) SaveWarning(ctx context.Context, warning domain.Warning) error {
	data, err := json.Marshal(warning)
	if err != nil {
		return fmt.Errorf("marshal warning %s: %w", warning.ID, err)
	}
	if err := s.client.Set(ctx, warningKeyPrefix+warning.ID, data, s.warningTTL).Err(); err != nil {
		return fmt.Errorf("save warning %s: %w", warning.ID, err)
	}
	return nil
}

// WarningByID fetches persisted warning detail. The boolean is false when
// the warning is unknown or expired.
func (s *Store) WarningByID(ctx context.Context, id string) (domain.Warning, bool, error) {
	data, err := s.client.Get(ctx, warningKeyPrefix+id).Result()
	if err == redisgo.Nil {
		return domain.Warning{}, false, nil
	}
	if err != nil {
		return domain.Warning{}, false, fmt.Errorf("read warning %s: %w", id, err)
	}

	var w domain.Warning
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return domain.Warning{}, false, fmt.Errorf("unmarshal warning %s: %w", id, err)
	}
	return w, true, nil
}

// ClearResults removes the summary keys, used when the user has no saved
// location.
func (s *Store) ClearResults(ctx context.Context) error {
	if err := s.client.Del(ctx, keyLastCheck, keyAlertCount, keyState, keyWarnings, keyDebugLog).Err(); err != nil {
		return fmt.Errorf("clear check results: %w", err)
	}
	return nil
}

// parseFloatValue converts an MGet result value to a float64.
func parseFloatValue(v any) (float64, bool) {
	str, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// resultWarnings normalizes a nil warning slice to an empty array so the
// persisted JSON is always `[]`, never `null`.
func resultWarnings(result domain.CheckResult) []domain.Warning {
	if result.Warnings == nil {
		return []domain.Warning{}
	}
	return result.Warnings
}

func resultDebugLog(result domain.CheckResult) []string {
	if result.DebugLog == nil {
		return []string{}
	}
	return result.DebugLog
}
