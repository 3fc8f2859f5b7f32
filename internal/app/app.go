package app

import (
	"context"

	"galhub/config"
	"galhub/internal/controllers"
	"galhub/internal/database"
	"galhub/internal/handlers/middleware"
	"galhub/internal/jobs"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	repos := repositories.New(db)
	appControllers := controllers.New(appServices, repos, config, db)
	middleware := middleware.New(db, config, repos, appServices)

	if config.SchedulerEnabled {
		historyTrimJob := jobs.NewHistoryTrimJob(
			repos.RecentGame,
			appServices.Transaction,
			services.Daily,
		)
		if err := appServices.Scheduler.AddJob(historyTrimJob); err != nil {
			return &App{}, log.Err("failed to register history trim job", err)
		}
		log.Info("Registered history trim job with scheduler")

		if err := appServices.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Services:    appServices,
		Repos:       repos,
		Controllers: appControllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Token,
		a.Services.Captcha,
		a.Services.Scheduler,
		a.Repos.User,
		a.Repos.Admin,
		a.Repos.Game,
		a.Repos.RecentGame,
		a.Repos.ClientLog,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Game,
		a.Controllers.Recent,
		a.Controllers.Admin,
		a.Controllers.Logs,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
