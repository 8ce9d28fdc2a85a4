//go:build integration
// +build integration

package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/cache"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/database"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const integrationSecret = "integration-secret-with-enough-length"

// setupTestDB starts PostgreSQL, applies the schema and returns a connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("houserent"),
		postgres.WithUsername("houserent"),
		postgres.WithPassword("houserent"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(dsn, "test")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

type mailbox chan [2]string

func (m mailbox) SendVerificationEmail(ctx context.Context, user *models.User, uid, token string) error {
	m <- [2]string{uid, token}
	return nil
}

type stack struct {
	db       *gorm.DB
	mails    mailbox
	accounts *services.AccountService
	catalog  *services.CatalogService
	ads      *services.AdvertisementService
	rents    *services.RentService
	reviews  *services.ReviewService
	favs     *services.FavoriteService
}

func newStack(t *testing.T) *stack {
	db := setupTestDB(t)
	mails := make(mailbox, 16)

	users := repositories.NewUserRepository(db)
	favorites := repositories.NewFavoriteRepository(db)
	houses := repositories.NewHouseRepository(db)
	ads := repositories.NewAdvertisementRepository(db)

	return &stack{
		db:    db,
		mails: mails,
		accounts: services.NewAccountService(users, repositories.NewTokenRepository(db), favorites, mails, cache.Noop{}, services.AccountConfig{
			JWTSecret:       integrationSecret,
			TokenTTL:        time.Hour,
			VerificationTTL: time.Hour,
			BcryptCost:      bcrypt.MinCost,
		}),
		catalog: services.NewCatalogService(repositories.NewCategoryRepository(db), houses, cache.Noop{}),
		ads:     services.NewAdvertisementService(ads, houses, cache.Noop{}),
		rents:   services.NewRentService(repositories.NewRentalLedger(db), cache.Noop{}),
		reviews: services.NewReviewService(repositories.NewReviewRepository(db), ads, cache.Noop{}),
		favs:    services.NewFavoriteService(favorites, ads),
	}
}

func (s *stack) user(t *testing.T, username, accountType string) *policy.Principal {
	t.Helper()
	ctx := context.Background()

	_, err := s.accounts.Register(ctx, services.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		AccountType:     accountType,
		Address:         "Road 1, Dhaka",
		MobileNumber:    "01712345678",
	})
	require.NoError(t, err)

	mail := <-s.mails
	require.NoError(t, s.accounts.Confirm(ctx, mail[0], mail[1]))

	result, err := s.accounts.Login(ctx, services.LoginInput{Username: username, Password: "s3cret-pass"})
	require.NoError(t, err)
	p, err := s.accounts.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	return p
}

func (s *stack) listedAd(t *testing.T, owner, admin *policy.Principal, categoryIDs ...uint) *models.Advertisement {
	t.Helper()
	ctx := context.Background()

	title := "Lake view"
	description := "Two bedrooms"
	location := "Dhanmondi"
	price := decimal.RequireFromString("15000.50")
	in := services.HouseInput{Title: &title, Description: &description, Location: &location, Price: &price}
	if len(categoryIDs) > 0 {
		in.CategoryIDs = &categoryIDs
	}
	house, err := s.catalog.CreateHouse(ctx, owner, in)
	require.NoError(t, err)

	ad, err := s.ads.Create(ctx, owner, house.ID)
	require.NoError(t, err)
	_, err = s.ads.Approve(ctx, admin, house.ID)
	require.NoError(t, err)
	return ad
}

func TestPostgresRentalLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	s := newStack(t)

	admin := s.user(t, "admin", models.AccountTypeAdmin)
	owner := s.user(t, "owner", models.AccountTypeUser)
	tenant := s.user(t, "tenant", models.AccountTypeUser)
	rival := s.user(t, "rival", models.AccountTypeUser)

	name := "Family Flat"
	category, err := s.catalog.CreateCategory(ctx, services.CategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "family-flat", category.Slug)

	_, err = s.catalog.CreateCategory(ctx, services.CategoryInput{Name: &name})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	ad := s.listedAd(t, owner, admin, category.ID)

	listed, err := s.ads.ListApproved(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].House)
	assert.Equal(t, "15000.5", listed[0].House.Price.String())

	added, err := s.favs.Add(ctx, tenant, ad.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = s.favs.Add(ctx, tenant, ad.ID)
	require.NoError(t, err)
	assert.False(t, added)

	first, err := s.rents.RequestRent(ctx, tenant, services.RentRequestInput{Advertisement: ad.ID})
	require.NoError(t, err)
	_, err = s.rents.RequestRent(ctx, tenant, services.RentRequestInput{Advertisement: ad.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
	second, err := s.rents.RequestRent(ctx, rival, services.RentRequestInput{Advertisement: ad.ID})
	require.NoError(t, err)

	require.NoError(t, s.rents.Accept(ctx, owner, first.ID))

	got, err := s.rents.GetForOwner(ctx, owner, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentRequestStatusRejected, got.Status)

	_, err = s.rents.RequestRent(ctx, rival, services.RentRequestInput{Advertisement: ad.ID})
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	listed, err = s.ads.ListApproved(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	review, err := s.reviews.Create(ctx, tenant, services.ReviewInput{Advertisement: ad.ID, Rating: 5, Text: "<b>Great</b> place"})
	require.NoError(t, err)
	assert.Equal(t, "Great place", review.Text)

	rating := 0
	_, err = s.reviews.Update(ctx, tenant, review.ID, services.ReviewUpdateInput{Rating: &rating})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestPostgresConcurrentAccept(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	s := newStack(t)

	admin := s.user(t, "admin", models.AccountTypeAdmin)
	owner := s.user(t, "owner", models.AccountTypeUser)
	ad := s.listedAd(t, owner, admin)

	const tenants = 6
	ids := make([]uint, 0, tenants)
	for i := 0; i < tenants; i++ {
		tenant := s.user(t, fmt.Sprintf("tenant%d", i), models.AccountTypeUser)
		req, err := s.rents.RequestRent(ctx, tenant, services.RentRequestInput{Advertisement: ad.ID})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	results := make([]error, tenants)
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			results[i] = s.rents.Accept(ctx, owner, id)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	accepted := 0
	for _, err := range results {
		if err == nil {
			accepted++
			continue
		}
		assert.True(t, errors.Is(err, errors.ErrCodeConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, accepted)

	var counts []struct {
		Status models.RentRequestStatus
		N      int
	}
	require.NoError(t, s.db.Model(&models.RentRequest{}).
		Select("status, count(*) as n").
		Where("advertisement_id = ?", ad.ID).
		Group("status").
		Scan(&counts).Error)

	byStatus := map[models.RentRequestStatus]int{}
	for _, c := range counts {
		byStatus[c.Status] = c.N
	}
	assert.Equal(t, 1, byStatus[models.RentRequestStatusAccepted])
	assert.Equal(t, tenants-1, byStatus[models.RentRequestStatusRejected])
	assert.Zero(t, byStatus[models.RentRequestStatusPending])

	var stored models.Advertisement
	require.NoError(t, s.db.First(&stored, ad.ID).Error)
	assert.True(t, stored.IsRented)
	assert.True(t, stored.IsRequested)
}
