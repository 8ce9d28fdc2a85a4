package commands

import (
	"context"
	"fmt"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/cache"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/config"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/database"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/handlers"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/notify"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories/memory"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"gorm.io/gorm"
)

// stores is one storage backend seen through the service ports.
type stores struct {
	users      services.UserStore
	tokens     services.TokenStore
	categories services.CategoryStore
	houses     services.HouseStore
	ads        services.AdvertisementStore
	favorites  services.FavoriteStore
	rentals    services.RentalLedger
	reviews    services.ReviewStore

	close func()
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on exit")
		store := memory.NewStore()
		return &stores{
			users:      store.Users(),
			tokens:     store.Tokens(),
			categories: store.Categories(),
			houses:     store.Houses(),
			ads:        store.Advertisements(),
			favorites:  store.Favorites(),
			rentals:    store.Rentals(),
			reviews:    store.Reviews(),
			close:      func() {},
		}, nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return postgresStores(db), nil
}

func postgresStores(db *gorm.DB) *stores {
	return &stores{
		users:      repositories.NewUserRepository(db),
		tokens:     repositories.NewTokenRepository(db),
		categories: repositories.NewCategoryRepository(db),
		houses:     repositories.NewHouseRepository(db),
		ads:        repositories.NewAdvertisementRepository(db),
		favorites:  repositories.NewFavoriteRepository(db),
		rentals:    repositories.NewRentalLedger(db),
		reviews:    repositories.NewReviewRepository(db),
		close:      func() { closeDB(db) },
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newCache returns the Redis cache when configured. An unreachable Redis
// degrades to no caching.
func newCache(ctx context.Context, cfg *config.Config) (services.AdvertisementCache, func()) {
	if cfg.RedisAddr == "" {
		return cache.Noop{}, func() {}
	}
	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable, advertisement caching disabled", "error", err)
		return cache.Noop{}, func() {}
	}
	return cache.NewRedisCache(client, cfg.GetCacheTTL()), func() { _ = client.Close() }
}

func newNotifier(cfg *config.Config) (services.Notifier, error) {
	if cfg.SMTPHost == "" {
		return notify.NewLogMailer(cfg.AppBaseURL), nil
	}
	mailer, err := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		BaseURL:  cfg.AppBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure mail: %w", err)
	}
	return mailer, nil
}

func accountService(cfg *config.Config, st *stores, notifier services.Notifier, adCache services.AdvertisementCache) *services.AccountService {
	return services.NewAccountService(st.users, st.tokens, st.favorites, notifier, adCache, services.AccountConfig{
		JWTSecret:       cfg.JWTSecret,
		TokenTTL:        cfg.GetTokenTTL(),
		VerificationTTL: cfg.GetVerificationTTL(),
		BcryptCost:      cfg.BcryptCost,
	})
}

func newHandlerManager(cfg *config.Config, st *stores, notifier services.Notifier, adCache services.AdvertisementCache) *handlers.HandlerManager {
	return handlers.NewHandlerManager(
		cfg,
		accountService(cfg, st, notifier, adCache),
		services.NewFavoriteService(st.favorites, st.ads),
		services.NewCatalogService(st.categories, st.houses, adCache),
		services.NewAdvertisementService(st.ads, st.houses, adCache),
		services.NewRentService(st.rentals, adCache),
		services.NewReviewService(st.reviews, st.ads, adCache),
	)
}
