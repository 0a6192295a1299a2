package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goran-ethernal/SwapIndexor/internal/common"
	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
)

// Maintenance triggers.
const (
	TriggerStartup  = "startup"
	TriggerPeriodic = "periodic"
	TriggerPrune    = "prune"
	TriggerManual   = "manual"
)

// Maintenance keeps an archive database compact while the archiver writes to it.
type Maintenance interface {
	// Start begins background maintenance if enabled.
	Start(ctx context.Context) error
	// Stop stops background maintenance and waits for the worker to exit.
	Stop() error
	// AcquireOperationLock takes a shared lock for a database operation.
	// The returned function releases it.
	AcquireOperationLock() func()
	// BlocksPruned records blocks removed by retention. Once enough were removed since the
	// last run, the database is compacted before BlocksPruned returns. It must not be called
	// while holding the operation lock.
	BlocksPruned(ctx context.Context, count int64) error
	// GetMetrics returns the maintenance counters.
	GetMetrics() MaintenanceMetrics
	// RunMaintenance checkpoints the WAL and vacuums the database once.
	RunMaintenance(ctx context.Context) error
}

// NoOpMaintenance is used when no maintenance is configured.
type NoOpMaintenance struct{}

func (m *NoOpMaintenance) Start(ctx context.Context) error { return nil }

func (m *NoOpMaintenance) Stop() error { return nil }

func (m *NoOpMaintenance) RunMaintenance(ctx context.Context) error { return nil }

func (m *NoOpMaintenance) BlocksPruned(ctx context.Context, count int64) error { return nil }

func (m *NoOpMaintenance) AcquireOperationLock() func() { return func() {} }

func (m *NoOpMaintenance) GetMetrics() MaintenanceMetrics { return MaintenanceMetrics{} }

// MaintenanceMetrics summarizes the runs of a coordinator.
type MaintenanceMetrics struct {
	LastMaintenanceTime  time.Time
	LastTrigger          string
	MaintenanceCount     uint64
	LastMaintenanceError error
	// PrunedSinceMaintenance counts blocks pruned since the last successful run.
	PrunedSinceMaintenance uint64
}

// MaintenanceCoordinator compacts one archive database. Store operations hold the read side
// of opLock and a run holds the write side, so a run starts once in-flight operations finish
// and new ones wait for it.
type MaintenanceCoordinator struct {
	name   string
	dbPath string
	db     *sql.DB
	cfg    config.MaintenanceConfig
	log    *logger.Logger

	opLock sync.RWMutex

	cancel context.CancelFunc
	wg     sync.WaitGroup

	stateMu sync.Mutex
	state   MaintenanceMetrics
}

// NewMaintenanceCoordinator returns a coordinator for the database at dbPath, or a no-op
// when cfg is nil. name labels the metrics, usually the network name.
func NewMaintenanceCoordinator(
	name, dbPath string,
	db *sql.DB,
	cfg *config.MaintenanceConfig,
	log *logger.Logger,
) Maintenance {
	if cfg == nil {
		return &NoOpMaintenance{}
	}

	return newMaintenanceCoordinator(name, dbPath, db, *cfg, log)
}

func newMaintenanceCoordinator(
	name, dbPath string,
	db *sql.DB,
	cfg config.MaintenanceConfig,
	log *logger.Logger,
) *MaintenanceCoordinator {
	return &MaintenanceCoordinator{
		name:   name,
		dbPath: dbPath,
		db:     db,
		cfg:    cfg,
		log:    log.WithComponent(common.ComponentMaintenance),
	}
}

// Start runs startup maintenance if configured and launches the periodic worker.
// Prune-triggered runs happen whether or not the worker is enabled.
func (m *MaintenanceCoordinator) Start(ctx context.Context) error {
	if !m.cfg.Enabled {
		m.log.Infow("periodic maintenance disabled",
			"db", m.name,
			"vacuum_after_pruned_blocks", m.cfg.VacuumAfterPrunedBlocks,
		)
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if m.cfg.VacuumOnStartup {
		if err := m.run(workerCtx, TriggerStartup); err != nil {
			m.log.Warnw("startup maintenance failed", "db", m.name, "error", err)
		}
	}

	m.wg.Go(func() { m.worker(workerCtx) })

	m.log.Infow("periodic maintenance started",
		"db", m.name,
		"interval", m.cfg.CheckInterval.Duration,
		"checkpoint_mode", m.cfg.WALCheckpointMode,
		"vacuum_after_pruned_blocks", m.cfg.VacuumAfterPrunedBlocks,
	)

	return nil
}

// Stop cancels the worker and waits for it.
func (m *MaintenanceCoordinator) Stop() error {
	if m.cancel == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	m.cancel = nil
	m.log.Infow("periodic maintenance stopped", "db", m.name)

	return nil
}

func (m *MaintenanceCoordinator) worker(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.run(ctx, TriggerPeriodic); err != nil {
				m.log.Warnw("periodic maintenance failed", "db", m.name, "error", err)
			}
		}
	}
}

// BlocksPruned adds count to the pruned total and compacts the database once the total
// reaches vacuum_after_pruned_blocks.
func (m *MaintenanceCoordinator) BlocksPruned(ctx context.Context, count int64) error {
	if count <= 0 {
		return nil
	}

	m.stateMu.Lock()
	m.state.PrunedSinceMaintenance += uint64(count)
	pending := m.state.PrunedSinceMaintenance
	m.stateMu.Unlock()

	threshold := m.cfg.VacuumAfterPrunedBlocks
	if threshold == 0 || pending < threshold {
		return nil
	}

	m.log.Debugw("pruned blocks reached the vacuum threshold", "db", m.name, "pruned", pending, "threshold", threshold)
	return m.run(ctx, TriggerPrune)
}

// RunMaintenance runs maintenance once on demand.
func (m *MaintenanceCoordinator) RunMaintenance(ctx context.Context) error {
	return m.run(ctx, TriggerManual)
}

func (m *MaintenanceCoordinator) run(ctx context.Context, trigger string) error {
	m.opLock.Lock()
	defer m.opLock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	sizeBefore := m.size()

	err := m.walCheckpoint()
	if err != nil {
		err = fmt.Errorf("WAL checkpoint failed: %w", err)
	} else {
		err = m.vacuum()
	}

	sizeAfter := m.size()
	duration := time.Since(start)

	m.stateMu.Lock()
	m.state.LastMaintenanceTime = time.Now().UTC()
	m.state.LastTrigger = trigger
	m.state.MaintenanceCount++
	m.state.LastMaintenanceError = err
	if err == nil {
		m.state.PrunedSinceMaintenance = 0
	}
	m.stateMu.Unlock()

	maintenanceRunLog(m.name, trigger, err, duration)
	DBSizeLog(m.name, sizeAfter)

	if err != nil {
		m.log.Warnw("maintenance failed", "db", m.name, "trigger", trigger, "duration", duration, "error", err)
		return err
	}

	var reclaimed uint64
	if sizeBefore > sizeAfter {
		reclaimed = uint64(sizeBefore - sizeAfter)
	}
	spaceReclaimedLog(m.name, reclaimed)

	m.log.Infow("maintenance finished",
		"db", m.name,
		"trigger", trigger,
		"duration", duration,
		"size_bytes", sizeAfter,
		"reclaimed_mb", common.BytesToMB(reclaimed),
	)

	return nil
}

func (m *MaintenanceCoordinator) size() int64 {
	size, err := DBTotalSize(m.dbPath)
	if err != nil {
		m.log.Warnw("failed to read database size", "db", m.name, "error", err)
	}
	return size
}

// walCheckpoint is a no-op unless the database runs in WAL mode.
func (m *MaintenanceCoordinator) walCheckpoint() error {
	var journal string
	if err := m.db.QueryRow("PRAGMA journal_mode").Scan(&journal); err != nil {
		return fmt.Errorf("failed to read journal mode: %w", err)
	}
	if !strings.EqualFold(journal, "wal") {
		return nil
	}

	mode := m.cfg.WALCheckpointMode
	var busy, frames, moved int
	if err := m.db.QueryRow("PRAGMA wal_checkpoint(" + mode + ")").Scan(&busy, &frames, &moved); err != nil {
		return err
	}

	walCheckpointInc(m.name, strings.ToLower(mode))
	if busy > 0 {
		m.log.Warnw("WAL checkpoint left busy pages", "db", m.name, "busy", busy)
	}
	m.log.Debugw("WAL checkpoint done", "db", m.name, "mode", mode, "frames", frames, "checkpointed", moved)

	return nil
}

func (m *MaintenanceCoordinator) vacuum() error {
	if err := Vacuum(m.db); err != nil {
		if strings.Contains(err.Error(), "database is locked") {
			return fmt.Errorf("cannot vacuum: database is locked (retry later)")
		}
		return err
	}

	vacuumRunsInc(m.name)
	return nil
}

// AcquireOperationLock takes the shared side of the maintenance lock.
func (m *MaintenanceCoordinator) AcquireOperationLock() func() {
	m.opLock.RLock()
	return m.opLock.RUnlock
}

// GetMetrics returns the maintenance counters.
func (m *MaintenanceCoordinator) GetMetrics() MaintenanceMetrics {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	return m.state
}
