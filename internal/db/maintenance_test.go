package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

func setupMaintenanceTestDB(t *testing.T, rows int) (*sql.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "archive.sqlite")
	cfg := config.DatabaseConfig{Path: dbPath}
	cfg.ApplyDefaults()

	db, err := NewSQLiteDBFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE blocks (height INTEGER PRIMARY KEY, hash TEXT NOT NULL)`)
	require.NoError(t, err)
	for i := range rows {
		_, err := db.Exec(`INSERT INTO blocks (height, hash) VALUES (?, ?)`, i, "block-hash-placeholder")
		require.NoError(t, err)
	}

	return db, dbPath
}

func TestNewMaintenanceCoordinator(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t, 0)
	log := logger.NewNopLogger()

	require.IsType(t, &NoOpMaintenance{}, NewMaintenanceCoordinator("mainnet", dbPath, db, nil, log))

	m := NewMaintenanceCoordinator("mainnet", dbPath, db, &config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"}, log)
	coordinator, ok := m.(*MaintenanceCoordinator)
	require.True(t, ok)
	require.Equal(t, "mainnet", coordinator.name)
	require.Equal(t, "PASSIVE", coordinator.cfg.WALCheckpointMode)
}

func TestMaintenanceCoordinator_RunMaintenance(t *testing.T) {
	for _, mode := range []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"} {
		t.Run(mode, func(t *testing.T) {
			db, dbPath := setupMaintenanceTestDB(t, 500)

			coordinator := newMaintenanceCoordinator("mainnet", dbPath, db,
				config.MaintenanceConfig{WALCheckpointMode: mode}, logger.NewNopLogger())

			require.NoError(t, coordinator.RunMaintenance(context.Background()))

			metrics := coordinator.GetMetrics()
			require.Equal(t, uint64(1), metrics.MaintenanceCount)
			require.Equal(t, TriggerManual, metrics.LastTrigger)
			require.False(t, metrics.LastMaintenanceTime.IsZero())
			require.NoError(t, metrics.LastMaintenanceError)
		})
	}
}

func TestMaintenanceCoordinator_BlocksPruned(t *testing.T) {
	tests := []struct {
		name      string
		threshold uint64
		batches   []int64
		wantRuns  uint64
		wantLeft  uint64
	}{
		{name: "below threshold", threshold: 10, batches: []int64{3, 4}, wantRuns: 0, wantLeft: 7},
		{name: "threshold reached", threshold: 10, batches: []int64{6, 4}, wantRuns: 1, wantLeft: 0},
		{name: "counter restarts after a run", threshold: 5, batches: []int64{5, 2, 4}, wantRuns: 2, wantLeft: 0},
		{name: "nothing pruned", threshold: 1, batches: []int64{0, -3}, wantRuns: 0, wantLeft: 0},
		{name: "threshold off", threshold: 0, batches: []int64{1000}, wantRuns: 0, wantLeft: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbPath := setupMaintenanceTestDB(t, 50)
			coordinator := newMaintenanceCoordinator("mainnet", dbPath, db, config.MaintenanceConfig{
				WALCheckpointMode:       "PASSIVE",
				VacuumAfterPrunedBlocks: tt.threshold,
			}, logger.NewNopLogger())

			for _, n := range tt.batches {
				require.NoError(t, coordinator.BlocksPruned(context.Background(), n))
			}

			metrics := coordinator.GetMetrics()
			require.Equal(t, tt.wantRuns, metrics.MaintenanceCount)
			require.Equal(t, tt.wantLeft, metrics.PrunedSinceMaintenance)
			if tt.wantRuns > 0 {
				require.Equal(t, TriggerPrune, metrics.LastTrigger)
			}
		})
	}
}

func TestMaintenanceCoordinator_CancelledContext(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t, 0)
	coordinator := newMaintenanceCoordinator("mainnet", dbPath, db,
		config.MaintenanceConfig{WALCheckpointMode: "TRUNCATE"}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, coordinator.RunMaintenance(ctx), context.Canceled)
	require.Zero(t, coordinator.GetMetrics().MaintenanceCount)
}

func TestMaintenanceCoordinator_WaitsForOperations(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t, 10)
	coordinator := newMaintenanceCoordinator("mainnet", dbPath, db,
		config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"}, logger.NewNopLogger())

	unlock := coordinator.AcquireOperationLock()

	var finished atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, coordinator.RunMaintenance(context.Background()))
		finished.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	require.False(t, finished.Load())

	unlock()
	<-done
	require.True(t, finished.Load())
}

func TestMaintenanceCoordinator_ConcurrentOperations(t *testing.T) {
	db, dbPath := setupMaintenanceTestDB(t, 0)
	coordinator := newMaintenanceCoordinator("mainnet", dbPath, db,
		config.MaintenanceConfig{WALCheckpointMode: "PASSIVE"}, logger.NewNopLogger())

	const workers, perWorker = 20, 5
	var inserted atomic.Int32
	var wg sync.WaitGroup

	for w := range workers {
		wg.Go(func() {
			for i := range perWorker {
				unlock := coordinator.AcquireOperationLock()
				_, err := db.Exec(`INSERT INTO blocks (height, hash) VALUES (?, ?)`, w*perWorker+i, "h")
				unlock()
				if err == nil {
					inserted.Add(1)
				}
				time.Sleep(time.Millisecond)
			}
		})
	}

	wg.Go(func() {
		for range 3 {
			require.NoError(t, coordinator.RunMaintenance(context.Background()))
		}
	})

	wg.Wait()

	require.Equal(t, int32(workers*perWorker), inserted.Load())
	require.Equal(t, uint64(3), coordinator.GetMetrics().MaintenanceCount)
}

func TestMaintenanceCoordinator_Background(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MaintenanceConfig
		wait    time.Duration
		atLeast uint64
		atMost  uint64
	}{
		{
			name: "periodic",
			cfg: config.MaintenanceConfig{
				Enabled:           true,
				CheckInterval:     common.NewDuration(50 * time.Millisecond),
				WALCheckpointMode: "PASSIVE",
			},
			wait:    250 * time.Millisecond,
			atLeast: 1,
			atMost:  10,
		},
		{
			name: "startup only",
			cfg: config.MaintenanceConfig{
				Enabled:           true,
				CheckInterval:     common.NewDuration(time.Hour),
				VacuumOnStartup:   true,
				WALCheckpointMode: "TRUNCATE",
			},
			atLeast: 1,
			atMost:  1,
		},
		{
			name: "disabled",
			cfg: config.MaintenanceConfig{
				CheckInterval:     common.NewDuration(10 * time.Millisecond),
				WALCheckpointMode: "TRUNCATE",
			},
			wait: 100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, dbPath := setupMaintenanceTestDB(t, 100)
			coordinator := newMaintenanceCoordinator("mainnet", dbPath, db, tt.cfg, logger.NewNopLogger())

			require.NoError(t, coordinator.Start(t.Context()))
			time.Sleep(tt.wait)
			require.NoError(t, coordinator.Stop())

			count := coordinator.GetMetrics().MaintenanceCount
			require.GreaterOrEqual(t, count, tt.atLeast)
			require.LessOrEqual(t, count, tt.atMost)
		})
	}
}
