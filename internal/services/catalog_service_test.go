package services

import (
	"context"
	"testing"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/models"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	family, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: strPtr("Family  Flat")})
	require.NoError(t, err)
	assert.Equal(t, "Family Flat", family.Name)
	assert.Equal(t, "family-flat", family.Slug)

	_, err = e.catalog.CreateCategory(ctx, CategoryInput{Name: strPtr("Other"), Slug: strPtr("family-flat")})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	_, err = e.catalog.CreateCategory(ctx, CategoryInput{})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	updated, err := e.catalog.UpdateCategory(ctx, family.ID, CategoryInput{Slug: strPtr("Family")})
	require.NoError(t, err)
	assert.Equal(t, "family", updated.Slug)

	list, err := e.catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, e.catalog.DeleteCategory(ctx, family.ID))
	_, err = e.catalog.GetCategory(ctx, family.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestCreateHouseValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)

	price := decimal.RequireFromString("1000")
	tests := []struct {
		name  string
		in    HouseInput
		field string
	}{
		{"missing title", HouseInput{Description: strPtr("d"), Location: strPtr("l"), Price: &price}, "title"},
		{"missing price", HouseInput{Title: strPtr("t"), Description: strPtr("d"), Location: strPtr("l")}, "price"},
		{"negative price", HouseInput{Title: strPtr("t"), Description: strPtr("d"), Location: strPtr("l"), Price: decimalPtr("-1")}, "price"},
		{"three decimals", HouseInput{Title: strPtr("t"), Description: strPtr("d"), Location: strPtr("l"), Price: decimalPtr("1.005")}, "price"},
		{"too many digits", HouseInput{Title: strPtr("t"), Description: strPtr("d"), Location: strPtr("l"), Price: decimalPtr("10000000000")}, "price"},
		{"unknown category", HouseInput{Title: strPtr("t"), Description: strPtr("d"), Location: strPtr("l"), Price: &price, CategoryIDs: &[]uint{77}}, "category_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.catalog.CreateHouse(ctx, owner, tt.in)
			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestHouseOwnership(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)
	other := e.verifiedUser(t, "other", models.AccountTypeUser)
	admin := e.verifiedUser(t, "admin", models.AccountTypeAdmin)

	category, err := e.catalog.CreateCategory(ctx, CategoryInput{Name: strPtr("Sublet")})
	require.NoError(t, err)

	house := e.house(t, owner, "Lake view", category.ID)
	assert.Equal(t, owner.AccountID, house.OwnerID)
	assert.Equal(t, []uint{category.ID}, house.CategoryIDs())
	e.house(t, other, "Hill side")

	mine, err := e.catalog.MyHouses(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, house.ID, mine[0].ID)

	byCategory, err := e.catalog.ListHouses(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	all, err := e.catalog.ListHouses(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = e.catalog.UpdateHouse(ctx, other, house.ID, HouseInput{Title: strPtr("Stolen")})
	assert.True(t, errors.Is(err, errors.ErrCodeForbidden))

	updated, err := e.catalog.UpdateHouse(ctx, owner, house.ID, HouseInput{
		Title:       strPtr("Lake view deluxe"),
		Price:       decimalPtr("20000"),
		CategoryIDs: &[]uint{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lake view deluxe", updated.Title)
	assert.True(t, decimal.RequireFromString("20000").Equal(updated.Price))
	assert.Empty(t, updated.Categories)
	assert.Equal(t, "Dhanmondi", updated.Location)

	_, err = e.catalog.UpdateHouse(ctx, owner, house.ID, HouseInput{Title: strPtr("  ")})
	assert.True(t, errors.Is(err, errors.ErrCodeValidation))

	assert.True(t, errors.Is(e.catalog.DeleteHouse(ctx, other, house.ID), errors.ErrCodeForbidden))
	require.NoError(t, e.catalog.DeleteHouse(ctx, admin, house.ID))

	_, err = e.catalog.GetHouse(ctx, house.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestCreateHouseSanitizesText(t *testing.T) {
	e := newEnv(t)
	owner := e.verifiedUser(t, "owner", models.AccountTypeUser)

	house := e.house(t, owner, "<b>Lake</b> view")
	assert.Equal(t, "Lake view", house.Title)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
