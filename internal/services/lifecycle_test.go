package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCreateAdvertisement(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	other := e.verifiedUser(t, "other", models.AccountTypeUser)
	house := e.house(t, owner, "Lake view")

	_, err := e.ads.Create(ctx, owner, 404)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = e.ads.Create(ctx, other, house.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	ad, err := e.ads.Create(ctx, owner, house.ID)
	require.NoError(t, err)
	assert.False(t, ad.IsApproved)
	assert.False(t, ad.IsRented)
	assert.False(t, ad.IsRequested)

	stored, err := e.catalog.GetHouse(ctx, house.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdvertised)

	_, err = e.ads.Create(ctx, owner, house.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeAlreadyExists))
}

func TestApproveAdvertisement(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	house := e.house(t, owner, "Lake view")

	_, err := e.ads.Approve(ctx, admin, house.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	ad, err := e.ads.Create(ctx, owner, house.ID)
	require.NoError(t, err)

	_, err = e.ads.Approve(ctx, owner, house.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	_, err = e.ads.Get(ctx, ad.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "unapproved ads are not public")

	before := e.cache.Invalidations()
	approved, err := e.ads.Approve(ctx, admin, house.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Greater(t, e.cache.Invalidations(), before)

	public, err := e.ads.Get(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, house.ID, public.House.ID)
}

func TestAdvertisementInputValidate(t *testing.T) {
	assert.NoError(t, AdvertisementInput{HouseID: 3}.Validate())

	appErr, ok := errors.As(AdvertisementInput{}.Validate())
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, map[string]string{"house_id": "This field is required."}, appErr.Fields)
}

func TestListApprovedUsesCache(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)

	category, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: strPtr("Family")})
	require.NoError(t, err)

	inCategory := e.house(t, owner, "Family flat", category.ID)
	_, err = e.ads.Create(ctx, owner, inCategory.ID)
	require.NoError(t, err)
	_, err = e.ads.Approve(ctx, admin, inCategory.ID)
	require.NoError(t, err)
	e.listedAd(t, owner, admin, "Bachelor room")
	e.house(t, owner, "Not advertised")

	all, err := e.ads.ListApproved(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := e.ads.ListApproved(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, inCategory.ID, filtered[0].HouseID)

	_, err = e.cache.GetApproved(ctx, category.ID)
	require.NoError(t, err, "listing should have been cached")

	cached, err := e.ads.ListApproved(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, filtered[0].ID, cached[0].ID)

	everything, err := e.ads.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, everything, 2)

	_, err = e.ads.ListAll(ctx, owner)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))
}

func TestRequestRent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	tenant := e.verifiedUser(t, "tenant", models.AccountTypeUser)
	ad := e.listedAd(t, owner, admin, "Lake view")

	_, err := e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: 999})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	_, err = e.rents.RequestRent(ctx, tenant, RentRequestInput{})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	request, err := e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RentRequestStatusPending, request.Status)

	stored, err := e.store.Advertisements().GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRequested)

	_, err = e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, "You have already sent a rent request for this advertisement.", appErr.Message)

	requests, err := e.rents.ListForOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, requests, 1)

	none, err := e.rents.ListForOwner(ctx, tenant)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = e.rents.GetForOwner(ctx, tenant, request.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestRequestRentRefreshesPublicList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	tenant := e.verifiedUser(t, "tenant", models.AccountTypeUser)
	ad := e.listedAd(t, owner, admin, "Lake view")

	listed, err := e.ads.ListApproved(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].IsRequested)
	_, err = e.cache.GetApproved(ctx, 0)
	require.NoError(t, err, "listing should have been cached")

	before := e.cache.Invalidations()
	_, err = e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
	require.NoError(t, err)
	assert.Greater(t, e.cache.Invalidations(), before)

	listed, err = e.ads.ListApproved(ctx, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, listed[0].IsRequested)
}

func TestAcceptRentRequest(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	ad := e.listedAd(t, owner, admin, "Lake view")

	var requests []*models.RentRequest
	for i := 0; i < 3; i++ {
		tenant := e.verifiedUser(t, fmt.Sprintf("tenant%d", i), models.AccountTypeUser)
		req, err := e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
		require.NoError(t, err)
		requests = append(requests, req)
	}

	err := e.rents.Accept(ctx, owner, 999)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	err = e.rents.Accept(ctx, admin, requests[1].ID)
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	before := e.cache.Invalidations()
	require.NoError(t, e.rents.Accept(ctx, owner, requests[1].ID))
	assert.Greater(t, e.cache.Invalidations(), before)

	want := []models.RentRequestStatus{
		models.RentRequestStatusRejected,
		models.RentRequestStatusAccepted,
		models.RentRequestStatusRejected,
	}
	for i, req := range requests {
		got, err := e.rents.GetForOwner(ctx, owner, req.ID)
		require.NoError(t, err)
		assert.Equal(t, want[i], got.Status, "request %d", i)
	}

	stored, err := e.store.Advertisements().GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRented)

	for _, req := range requests {
		err := e.rents.Accept(ctx, owner, req.ID)
		assert.True(t, errors.Is(err, errors.ErrCodeConflict))
	}

	late := e.verifiedUser(t, "late", models.AccountTypeUser)
	_, err = e.rents.RequestRent(ctx, late, RentRequestInput{Advertisement: ad.ID})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "This advertisement has already been rented.", appErr.Message)

	listed, err := e.ads.ListApproved(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestConcurrentAcceptHasOneWinner(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	ad := e.listedAd(t, owner, admin, "Lake view")

	const tenants = 8
	ids := make([]uint, 0, tenants)
	for i := 0; i < tenants; i++ {
		tenant := e.verifiedUser(t, fmt.Sprintf("tenant%d", i), models.AccountTypeUser)
		req, err := e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	results := make([]error, tenants)
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			results[i] = e.rents.Accept(ctx, owner, id)
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

	requests, err := e.rents.ListForOwner(ctx, owner)
	require.NoError(t, err)
	statuses := map[models.RentRequestStatus]int{}
	for _, r := range requests {
		statuses[r.Status]++
	}
	assert.Equal(t, 1, statuses[models.RentRequestStatusAccepted])
	assert.Equal(t, tenants-1, statuses[models.RentRequestStatusRejected])
	assert.Zero(t, statuses[models.RentRequestStatusPending])
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	fan := e.verifiedUser(t, "fan", models.AccountTypeUser)
	ad := e.listedAd(t, owner, admin, "Lake view")

	_, err := e.favorites.Add(ctx, fan, 999)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	added, err := e.favorites.Add(ctx, fan, ad.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = e.favorites.Add(ctx, fan, ad.ID)
	require.NoError(t, err)
	assert.False(t, added, "second add reports already present")

	ids, err := e.store.Favorites().ListIDs(ctx, fan.AccountID)
	require.NoError(t, err)
	assert.Equal(t, []uint{ad.ID}, ids)

	saved, err := e.favorites.List(ctx, fan)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, ad.ID, saved[0].ID)

	require.NoError(t, e.favorites.Remove(ctx, fan, ad.ID))

	err = e.favorites.Remove(ctx, fan, ad.ID)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
	assert.Equal(t, "Advertisement not in favorites.", appErr.Message)

	err = e.favorites.Remove(ctx, fan, 999)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

// TestRentalScenario walks one house from registration to an accepted rent request.
func TestRentalScenario(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	_, err := e.accounts.Register(ctx, registerInput("owner"))
	require.NoError(t, err)
	mail := <-e.mails

	_, err = e.accounts.Login(ctx, LoginInput{Username: "owner", Password: "s3cret-pass"})
	require.True(t, errors.Is(err, errors.ErrCodeUnauthorized), "unverified login must fail")

	require.NoError(t, e.accounts.Confirm(ctx, mail.uid, mail.token))
	session, err := e.accounts.Login(ctx, LoginInput{Username: "owner", Password: "s3cret-pass"})
	require.NoError(t, err)
	owner, err := e.accounts.Authenticate(ctx, session.Token)
	require.NoError(t, err)

	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)
	tenant := e.verifiedUser(t, "tenant", models.AccountTypeUser)

	house := e.house(t, owner, "Lake view")
	ad, err := e.ads.Create(ctx, owner, house.ID)
	require.NoError(t, err)
	_, err = e.ads.Create(ctx, owner, house.ID)
	require.Error(t, err)

	_, err = e.ads.Approve(ctx, admin, house.ID)
	require.NoError(t, err)

	request, err := e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
	require.NoError(t, err)
	_, err = e.rents.RequestRent(ctx, tenant, RentRequestInput{Advertisement: ad.ID})
	require.True(t, errors.Is(err, errors.ErrCodeConflict))

	require.NoError(t, e.rents.Accept(ctx, owner, request.ID))

	stored, err := e.store.Advertisements().GetByID(ctx, ad.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRented)

	accepted, err := e.rents.GetForOwner(ctx, owner, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RentRequestStatusAccepted, accepted.Status)
}
