package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "tablebanking/internal/adapter/http"
	idem "tablebanking/internal/adapter/middleware"
	"tablebanking/internal/adapter/repository/mysql"
	"tablebanking/internal/config"
	"tablebanking/internal/infrastructure/cache"
	"tablebanking/internal/infrastructure/db"
	"tablebanking/internal/usecase/dashboard"
	"tablebanking/internal/usecase/loan"
	"tablebanking/internal/usecase/repayment"
	"tablebanking/internal/usecase/settings"
	"tablebanking/pkg/money"
)

func main() {
	// a local .env is optional; real environment variables win
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	var locker cache.Locker
	switch cfg.LockBackend {
	case config.LockLocal:
		locker = cache.NewLocalLocker()
	default:
		locker = cache.NewRedisLocker(rdb, time.Duration(cfg.LockTTLSecs)*time.Second)
	}
	locker = cache.BoundedWait{Locker: locker, Wait: time.Duration(cfg.LockWaitSecs) * time.Second}
	log.Printf("pool lock backend: %s", cfg.LockBackend)

	tx := mysql.NewGormUoW(gdb)
	repos := tx.Repos()
	clock := money.SystemClock{}

	settingsUC := settings.NewUsecase(repos.Settings, cfg.SettingOverrides())
	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "mysql", Ping: db.Ping(gdb)},
			httpadp.Check{Name: "redis", Ping: cache.Ping(rdb)},
		),
		Loans:      httpadp.NewLoanHandler(loan.NewUsecase(repos, tx, locker, settingsUC, clock)),
		Repayments: httpadp.NewRepaymentHandler(repayment.NewUsecase(repos, tx, settingsUC, clock)),
		Dashboard:  httpadp.NewDashboardHandler(dashboard.NewUsecase(repos, settingsUC, clock), settingsUC),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	httpadp.Register(e, handlers, idem.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
