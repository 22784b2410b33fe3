package app

import (
	"fmt"
	"time"

	"github.com/drewfoos/GoalQuest/internal/config"
	"github.com/drewfoos/GoalQuest/internal/db"
	"github.com/drewfoos/GoalQuest/internal/repository"
	"github.com/drewfoos/GoalQuest/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	GoalService     *service.GoalService
	RewardService   *service.RewardService
	LedgerService   *service.LedgerService
	ProgressService *service.ProgressService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %v", cfg.TimeZone, err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	rewardRepository := repository.NewRewardRepository(database)

	// One lock table shared by every balance-touching service
	locks := service.NewUserLocks()

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	goalService := service.NewGoalService(goalRepository, database, locks)
	rewardService := service.NewRewardService(rewardRepository, goalRepository, database, locks)
	ledgerService := service.NewLedgerService(goalRepository)
	progressService := service.NewProgressService(goalRepository, loc)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		GoalService:     goalService,
		RewardService:   rewardService,
		LedgerService:   ledgerService,
		ProgressService: progressService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
