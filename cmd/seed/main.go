package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"business-directory/internal/core/cache"
	"business-directory/internal/core/config"
	"business-directory/internal/core/database"
	"business-directory/internal/core/logger"
	"business-directory/internal/feature/business"
	"business-directory/internal/repo"
	"business-directory/internal/service"
)

// 清空 businesses 表并写入参考数据，最后按分类打印统计
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	l, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, l)
	if err := repo.Migrate(db); err != nil {
		l.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var store seedStore = repo.NewBusinessRepo(db)
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.App.Name)
		defer c.Close()
		store = repo.NewCachedBusinessRepo(repo.NewBusinessRepo(db), c, time.Duration(cfg.Redis.TTLSec)*time.Second, l)
	}
	n, err := store.Truncate(ctx)
	if err != nil {
		l.Fatal("clear businesses", zap.Error(err))
	}
	l.Info("cleared existing businesses", zap.Int64("deleted", n))

	svc := service.NewBusinessService(store, business.NewBuilder(cfg.Query.DefaultLimit, cfg.Query.MaxLimit))
	seed := business.SeedSet()
	for i := range seed {
		if _, err := svc.Create(ctx, &seed[i]); err != nil {
			l.Fatal("seed business", zap.String("name", *seed[i].Name), zap.Error(err))
		}
	}
	l.Info("added businesses", zap.Int("count", len(seed)))

	counts, err := store.CountByCategory(ctx)
	if err != nil {
		l.Fatal("summary", zap.Error(err))
	}
	var total int64
	for _, c := range counts {
		total += c.Count
		l.Info("category", zap.String("name", c.Category), zap.Int64("count", c.Count))
	}
	l.Info("database summary", zap.Int64("total", total))
}

// seedStore 清空走缓存版本时会一并清掉 redis 中的旧记录
type seedStore interface {
	service.BusinessRepository
	Truncate(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) ([]repo.CategoryCount, error)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
