package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-backend/models"
	"travel-backend/testutil"
)

func TestCurrencyService_DefaultIsExclusive(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCurrencyService(db)
	ctx := context.Background()

	inr, err := svc.Create(ctx, CurrencyInput{Code: "inr", Name: "Rupee", Symbol: "₹", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "INR", inr.Code)
	assert.Equal(t, 1.0, inr.ExchangeRate)

	usd, err := svc.Create(ctx, CurrencyInput{Code: "USD", Symbol: "$", ExchangeRate: 0.012})
	require.NoError(t, err)

	_, err = svc.Update(ctx, usd.ID, CurrencyInput{Code: "USD", Symbol: "$", ExchangeRate: 0.012, IsDefault: true})
	require.NoError(t, err)

	var defaults []models.Currency
	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, "USD", defaults[0].Code)

	list, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "USD", list[0].Code, "default currency is listed first")
}

func TestCurrencyService_Validation(t *testing.T) {
	svc := NewCurrencyService(testutil.NewDB(t))
	ctx := context.Background()

	for _, in := range []CurrencyInput{
		{Code: "US", Symbol: "$"},
		{Code: "US1", Symbol: "$"},
		{Code: "USD"},
		{Code: "USD", Symbol: "$", ExchangeRate: -1},
		{Code: "USD", Symbol: "$", IsDefault: true, IsActive: boolPtr(false)},
	} {
		_, err := svc.Create(ctx, in)
		assert.ErrorIs(t, err, ErrValidation, "%+v", in)
	}

	_, err := svc.Create(ctx, CurrencyInput{Code: "USD", Symbol: "$"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CurrencyInput{Code: "usd", Symbol: "$"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCurrencyService_DeleteInUseIsRejected(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCurrencyService(db)
	ctx := context.Background()

	usd := testutil.Currency(t, db, "USD", "$")
	eur := testutil.Currency(t, db, "EUR", "€")
	testutil.Package(t, db, testutil.PackageOpts{Slug: "bali", Prices: []models.PackagePrice{
		{CurrencyID: usd.ID, Price: 900},
	}})

	err := svc.Delete(ctx, usd.ID)
	assert.ErrorIs(t, err, ErrInUse)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Get(ctx, usd.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, eur.ID))
	_, err = svc.Get(ctx, eur.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, eur.ID), ErrNotFound)
}
