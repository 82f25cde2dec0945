package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"schedule-server/api/sheets"
	"schedule-server/conflicts"
	"schedule-server/dao/redis"
	"schedule-server/models"
	"schedule-server/spreadsheet"
	"schedule-server/timetable"
)

// DefaultRefreshTimeout bounds one shared refresh run.
const DefaultRefreshTimeout = 2 * time.Minute

// ScheduleRefresherService rebuilds the schedule snapshot from the source workbook.
type ScheduleRefresherService struct {
	scheduleDao *redis.RedisScheduleDAO
	source      sheets.ScheduleSource
	store       *SnapshotStore
	layout      timetable.Layout
	detector    *conflicts.Detector
	sheetName   string
	cacheTTL    time.Duration
	group       singleflight.Group
	timeout     time.Duration
	now         func() time.Time
}

// NewScheduleRefresherService constructs a new refresher with dependencies.
// Cached workbooks expire after cacheTTL.
func NewScheduleRefresherService(
	scheduleDao *redis.RedisScheduleDAO,
	source sheets.ScheduleSource,
	store *SnapshotStore,
	layout timetable.Layout,
	sheetName string,
	cacheTTL time.Duration,
) *ScheduleRefresherService {
	return &ScheduleRefresherService{
		scheduleDao: scheduleDao,
		source:      source,
		store:       store,
		layout:      layout,
		detector:    conflicts.NewDetector(layout.DayOrder),
		sheetName:   sheetName,
		cacheTTL:    cacheTTL,
		timeout:     DefaultRefreshTimeout,
		now:         time.Now,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
// It stops when ctx is done.
func (sr *ScheduleRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *ScheduleRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[ScheduleRefresherService] Periodic job stopped.")
			return
		case <-ticker.C:
			log.Println("[ScheduleRefresherService] Running periodic schedule refresher job.")
			if _, err := sr.RefreshScheduleData(ctx, false); err != nil {
				log.Printf("[ScheduleRefresherService] RefreshScheduleData returned error: %v", err)
			} else {
				log.Println("[ScheduleRefresherService] RefreshScheduleData completed successfully.")
			}
		}
	}
}

// RefreshScheduleData rebuilds and publishes a snapshot. Without force a cached
// workbook is reused; with force the cache is dropped and the source is read again.
// Concurrent calls share one run, which outlives the caller that started it
// and is bounded by its own timeout. On failure the previous snapshot stays published.
func (sr *ScheduleRefresherService) RefreshScheduleData(ctx context.Context, force bool) (*models.Snapshot, error) {
	key := "refresh"
	if force {
		key = "refresh-force"
	}
	v, err, shared := sr.group.Do(key, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sr.timeout)
		defer cancel()
		return sr.refresh(runCtx, force)
	})
	if shared {
		log.Println("[ScheduleRefresherService] Joined an in-flight refresh.")
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.Snapshot), nil
}

func (sr *ScheduleRefresherService) refresh(ctx context.Context, force bool) (*models.Snapshot, error) {
	wb, fromCache, err := sr.loadWorkbook(ctx, force)
	if err != nil {
		return nil, err
	}

	table, err := spreadsheet.Read(wb.Data, spreadsheet.FormatFromName(wb.Name), sr.sheetName)
	if err != nil {
		if fromCache {
			if derr := sr.scheduleDao.DeleteWorkbook(); derr != nil {
				log.Printf("[ScheduleRefresherService] Failed to drop unreadable cached workbook: %v", derr)
			}
		}
		return nil, fmt.Errorf("failed to read workbook %s: %w", wb.Name, err)
	}

	builtAt := sr.now()
	lessons, lessonDiag := timetable.Normalize(table, sr.layout, builtAt)
	records, conflictDiag := sr.detector.Detect(lessons)

	snap := &models.Snapshot{
		ID:                  uuid.NewString(),
		BuiltAt:             builtAt,
		Source:              sr.source.Describe(),
		FromCache:           fromCache,
		Lessons:             lessons,
		LessonDiagnostics:   lessonDiag,
		Conflicts:           records,
		ConflictDiagnostics: conflictDiag,
	}
	sr.store.Swap(snap)

	log.Printf(
		"[ScheduleRefresherService] Published snapshot %s: lessons=%d conflicts=%d missing_columns=%d from_cache=%v",
		snap.ID, len(lessons), len(records), len(lessonDiag.MissingColumns), fromCache,
	)
	return snap, nil
}

// loadWorkbook returns the cached workbook when allowed, else fetches and caches a fresh one.
// Cache errors are logged and treated as misses.
func (sr *ScheduleRefresherService) loadWorkbook(ctx context.Context, force bool) (*sheets.Workbook, bool, error) {
	if force {
		if err := sr.scheduleDao.DeleteWorkbook(); err != nil {
			log.Printf("[ScheduleRefresherService] Failed to clear workbook cache: %v", err)
		}
	} else {
		wb, err := sr.scheduleDao.GetWorkbook()
		if err != nil {
			log.Printf("[ScheduleRefresherService] Workbook cache read failed: %v", err)
		}
		if wb != nil {
			log.Printf("[ScheduleRefresherService] Using cached workbook %s fetched at %s", wb.Name, wb.FetchedAt.Format(time.RFC3339))
			return wb, true, nil
		}
	}

	log.Printf("[ScheduleRefresherService] Fetching workbook from %s", sr.source.Describe())
	wb, err := sr.source.FetchWorkbook(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch schedule: %w", err)
	}
	if err := sr.scheduleDao.SetWorkbook(wb, sr.cacheTTL); err != nil {
		log.Printf("[ScheduleRefresherService] Failed to cache workbook: %v", err)
	}
	return wb, false, nil
}
