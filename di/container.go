package di

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"schedule-server/api/sheets"
	"schedule-server/config"
	"schedule-server/dao/redis"
	"schedule-server/db"
	"schedule-server/server"
	"schedule-server/server/handlers"
	services "schedule-server/service"
	"schedule-server/timetable"
	"schedule-server/util"
)

// Container holds all application dependencies.
type Container struct {
	Config                   *config.Config
	Layout                   timetable.Layout
	RedisClient              db.RedisClient
	RedisScheduleDao         *redis.RedisScheduleDAO
	ScheduleSource           sheets.ScheduleSource
	SnapshotStore            *services.SnapshotStore
	ScheduleService          *services.ScheduleService
	ScheduleRefresherService *services.ScheduleRefresherService
	ScheduleHandler          *handlers.ScheduleHandler
	MuxRouter                *mux.Router
	Router                   *server.Router
	ScheduleHttpServer       *server.ScheduleHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Printf("[Container] Initializing container - env: %s", cfg.AppEnv)

	layout, err := loadLayout(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	redisScheduleDao := redis.NewRedisScheduleDAO(redisClient)

	source, err := newScheduleSource(cfg)
	if err != nil {
		return nil, err
	}

	store := services.NewSnapshotStore()
	scheduleService := services.NewScheduleService(store, layout)
	refresherService := services.NewScheduleRefresherService(
		redisScheduleDao, source, store, layout, cfg.SheetName, cfg.CacheTTL(),
	)

	scheduleHandler := handlers.NewScheduleHandler(scheduleService, refresherService, layout.DayNames())
	muxRouter := mux.NewRouter()
	router := server.NewRouter(scheduleHandler, muxRouter)
	httpServer := server.NewScheduleHttpServer(router, muxRouter, cfg.ServerAddr)

	return &Container{
		Config:                   cfg,
		Layout:                   layout,
		RedisClient:              redisClient,
		RedisScheduleDao:         redisScheduleDao,
		ScheduleSource:           source,
		SnapshotStore:            store,
		ScheduleService:          scheduleService,
		ScheduleRefresherService: refresherService,
		ScheduleHandler:          scheduleHandler,
		MuxRouter:                muxRouter,
		Router:                   router,
		ScheduleHttpServer:       httpServer,
	}, nil
}

func loadLayout(cfg *config.Config) (timetable.Layout, error) {
	if cfg.LayoutFile == "" {
		log.Println("[Container] Using default sheet layout")
		return timetable.DefaultLayout(), nil
	}
	layout, err := util.ReadLayoutFromJSON(cfg.LayoutFile)
	if err != nil {
		return timetable.Layout{}, err
	}
	log.Printf("[Container] Using sheet layout from %s", cfg.LayoutFile)
	return *layout, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config) (db.RedisClient, error) {
	if !cfg.IsProd() {
		log.Println("[Container] Using mock redis client")
		return db.NewMockRedisClient(ctx), nil
	}

	log.Printf("[Container] Using redis at %s", cfg.RedisAddr)
	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	client, err := db.NewGoRedisClient(ctx, redisInternalClient)
	if err != nil {
		redisInternalClient.Close()
		return nil, err
	}
	return client, nil
}

func newScheduleSource(cfg *config.Config) (sheets.ScheduleSource, error) {
	switch cfg.DataMode {
	case config.DATA_MODE_EXCEL_URL:
		return sheets.NewSheetsExportClient(cfg.XLSXURL, cfg.FetchTimeout), nil
	case config.DATA_MODE_EXCEL_LOCAL:
		return sheets.NewLocalFileSource(cfg.LocalPath), nil
	default:
		return nil, fmt.Errorf("unknown data mode %q", cfg.DataMode)
	}
}
