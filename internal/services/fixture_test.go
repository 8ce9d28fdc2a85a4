package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/cache"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/policy"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-with-enough-length"

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendVerificationEmail(ctx context.Context, user *models.User, uid, token string) error {
	args := m.Called(ctx, user, uid, token)
	return args.Error(0)
}

// recordingCache is an in-process AdvertisementCache that counts invalidations.
type recordingCache struct {
	mu            sync.Mutex
	entries       map[uint][]byte
	invalidations int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[uint][]byte{}}
}

func (c *recordingCache) GetApproved(ctx context.Context, categoryID uint) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[categoryID]
	if !ok {
		return nil, cache.ErrMiss
	}
	return payload, nil
}

func (c *recordingCache) SetApproved(ctx context.Context, categoryID uint, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[categoryID] = payload
	return nil
}

func (c *recordingCache) InvalidateApproved(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[uint][]byte{}
	c.invalidations++
	return nil
}

func (c *recordingCache) Invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidations
}

// verificationMail is what the notifier was asked to send.
type verificationMail struct {
	uid   string
	token string
}

type env struct {
	store    *memory.Store
	notifier *mockNotifier
	cache    *recordingCache
	mails    chan verificationMail

	accounts  *AccountService
	favorites *FavoriteService
	catalog   *CatalogService
	ads       *AdvertisementService
	rents     *RentService
	reviews   *ReviewService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	e := &env{
		store:    store,
		notifier: &mockNotifier{},
		cache:    newRecordingCache(),
		mails:    make(chan verificationMail, 16),
	}
	e.notifier.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Run(func(args mock.Arguments) {
			e.mails <- verificationMail{uid: args.String(2), token: args.String(3)}
		})

	e.accounts = NewAccountService(store.Users(), store.Tokens(), store.Favorites(), e.notifier, e.cache, AccountConfig{
		JWTSecret:       testSecret,
		TokenTTL:        time.Hour,
		VerificationTTL: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	})
	e.favorites = NewFavoriteService(store.Favorites(), store.Advertisements())
	e.catalog = NewCatalogService(store.Categories(), store.Houses(), e.cache)
	e.ads = NewAdvertisementService(store.Advertisements(), store.Houses(), e.cache)
	e.rents = NewRentService(store.Rentals(), e.cache)
	e.reviews = NewReviewService(store.Reviews(), store.Advertisements(), e.cache)
	return e
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		FirstName:       "Test",
		LastName:        "User",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		AccountType:     models.AccountTypeUser,
		Address:         "Road 1, Dhaka",
		MobileNumber:    "01712345678",
	}
}

// verifiedUser registers and verifies an account, then logs it in.
func (e *env) verifiedUser(t *testing.T, username, accountType string) *policy.Principal {
	t.Helper()
	ctx := context.Background()

	in := registerInput(username)
	in.AccountType = accountType
	_, err := e.accounts.Register(ctx, in)
	require.NoError(t, err)

	mail := <-e.mails
	require.NoError(t, e.accounts.Confirm(ctx, mail.uid, mail.token))

	result, err := e.accounts.Login(ctx, LoginInput{Username: username, Password: in.Password})
	require.NoError(t, err)

	p, err := e.accounts.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	return p
}

func (e *env) house(t *testing.T, owner *policy.Principal, title string, categoryIDs ...uint) *models.House {
	t.Helper()

	price := decimal.RequireFromString("15000.50")
	in := HouseInput{
		Title:       &title,
		Description: strPtr("Two bedrooms near the lake"),
		Location:    strPtr("Dhanmondi"),
		Price:       &price,
	}
	if len(categoryIDs) > 0 {
		in.CategoryIDs = &categoryIDs
	}
	house, err := e.catalog.CreateHouse(context.Background(), owner, in)
	require.NoError(t, err)
	return house
}

// listedAd creates and approves an advertisement for a new house of owner.
func (e *env) listedAd(t *testing.T, owner, admin *policy.Principal, title string) *models.Advertisement {
	t.Helper()
	ctx := context.Background()

	house := e.house(t, owner, title)
	ad, err := e.ads.Create(ctx, owner, house.ID)
	require.NoError(t, err)
	_, err = e.ads.Approve(ctx, admin, house.ID)
	require.NoError(t, err)
	return ad
}

func strPtr(s string) *string {
	return &s
}
