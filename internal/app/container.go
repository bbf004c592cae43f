package app

import (
	"context"
	"errors"
	"time"

	"talentbridge/internal/config"
	"talentbridge/internal/database"
	dbpostgres "talentbridge/internal/database/postgres"
	"talentbridge/internal/events"
	"talentbridge/internal/infrastructure/cache"
	"talentbridge/internal/infrastructure/notifier"
	"talentbridge/internal/metrics"
	"talentbridge/internal/pkg/jwt"
	"talentbridge/internal/repository"
	"talentbridge/internal/usecase"
	"talentbridge/internal/worker"
	"talentbridge/internal/ws"

	"go.uber.org/zap"
)

const notifyQueueSize = 256

type Usecases struct {
	Auth         *usecase.Auth
	Users        *usecase.User
	Skills       *usecase.Skill
	Jobs         *usecase.Job
	JobBoard     *usecase.JobList
	Match        *usecase.Match
	Applications *usecase.Application
	Interviews   *usecase.Interview
	Offers       *usecase.Offer
	Notes        *usecase.Note
	Dashboard    *usecase.DashboardService
}

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Registry
	DB      database.DB
	Cache   *cache.Redis
	JWT     *jwt.HMACService

	Hub     *ws.Hub
	Pool    *worker.Pool
	Events  *events.Dispatcher
	Webhook *notifier.Webhook

	Usecases Usecases
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		DB:      db,
		Cache:   cache.NewRedis(ctx, cfg.Redis, logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}
	c.wireEvents()
	c.wireUsecases()
	return c, nil
}

func (c *Container) wireEvents() {
	c.Hub = ws.NewHub(c.Logger, c.Metrics)

	var outbound []events.Sink
	c.Webhook = notifier.NewWebhook(notifier.WebhookOptions{
		URL:        c.Config.Notify.WebhookURL,
		RatePerSec: c.Config.Notify.RatePerSec,
		Logger:     c.Logger,
		Metrics:    c.Metrics,
	})
	if c.Webhook != nil {
		outbound = append(outbound, c.Webhook)
	} else {
		c.Logger.Info("[Notify] webhook disabled, NOTIFY_WEBHOOK_URL is empty")
	}

	var d *events.Dispatcher
	c.Pool = worker.NewPool(c.Config.Notify.Workers, notifyQueueSize, func(err error) {
		d.HandleError(err)
	})
	d = events.NewDispatcher(events.DispatcherOptions{
		Realtime: []events.Sink{c.Hub},
		Outbound: outbound,
		Pool:     c.Pool,
		Logger:   c.Logger,
		Metrics:  c.Metrics,
	})
	c.Events = d
}

func (c *Container) wireUsecases() {
	users := repository.NewPostgresUserRepository(c.DB)
	profiles := repository.NewPostgresProfileRepository(c.DB)
	skills := repository.NewPostgresSkillRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	apps := repository.NewPostgresApplicationRepository(c.DB)
	interviews := repository.NewPostgresInterviewRepository(c.DB)
	offers := repository.NewPostgresOfferRepository(c.DB)
	notes := repository.NewPostgresNoteRepository(c.DB)

	c.Usecases = Usecases{
		Auth:     usecase.NewAuthUsecase(users, c.JWT),
		Users:    usecase.NewUserUsecase(users, profiles, skills, c.Cache, c.Logger),
		Skills:   usecase.NewSkillUsecase(skills, c.Cache, c.Metrics, c.Logger),
		Jobs:     usecase.NewJobUsecase(jobs, profiles, skills, c.Cache, c.Logger),
		JobBoard: usecase.NewJobListUsecase(jobs, c.Cache, c.Metrics, c.Logger),
		Match:    usecase.NewMatchUsecase(jobs, profiles, c.Metrics),
		Applications: usecase.NewApplicationUsecase(usecase.ApplicationDeps{
			Applications: apps,
			Jobs:         jobs,
			Users:        users,
			Profiles:     profiles,
			Interviews:   interviews,
			Offers:       offers,
			Notes:        notes,
			Events:       c.Events,
			Logger:       c.Logger,
		}),
		Interviews: usecase.NewInterviewUsecase(apps, jobs, interviews, c.Events, c.Logger),
		Offers:     usecase.NewOfferUsecase(apps, jobs, offers, c.Events, c.Logger),
		Notes:      usecase.NewNoteUsecase(apps, jobs, notes),
		Dashboard:  usecase.NewDashboardUsecase(repository.NewPostgresDashboardRepository(c.DB), c.Logger),
	}
}

// Start runs the websocket hub and the notification workers until ctx ends.
func (c *Container) Start(ctx context.Context) {
	go c.Hub.Run(ctx)
	c.Pool.Start(ctx)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
