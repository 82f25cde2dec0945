package commands

import (
	"context"
	"io"
	"log"
	"os"

	"schedule-server/api/sheets"
	"schedule-server/dao/redis"
	"schedule-server/db"
	"schedule-server/models"
	services "schedule-server/service"
	"schedule-server/timetable"
	"schedule-server/util"
)

// loadSchedule runs the same pipeline as the server once, against a local file.
func loadSchedule(ctx context.Context, file, sheet, layoutPath string) (*models.Snapshot, *services.ScheduleService, error) {
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	layout := timetable.DefaultLayout()
	if layoutPath != "" {
		l, err := util.ReadLayoutFromJSON(layoutPath)
		if err != nil {
			return nil, nil, err
		}
		layout = *l
	}

	store := services.NewSnapshotStore()
	refresher := services.NewScheduleRefresherService(
		redis.NewRedisScheduleDAO(db.NewMockRedisClient(ctx)),
		sheets.NewLocalFileSource(file),
		store, layout, sheet, 0,
	)
	snap, err := refresher.RefreshScheduleData(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	return snap, services.NewScheduleService(store, layout), nil
}
