package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/oakhost/oakhost_backend/internal/apperrors"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/oakhost/oakhost_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RatesServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateReader
	mockPricingRepo *MockTldPricingReader
	service         *services.RatesService
}

func (suite *RatesServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateReader)
	suite.mockPricingRepo = new(MockTldPricingReader)
	suite.service = services.NewRatesService(suite.mockRateRepo, suite.mockPricingRepo, domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GBP",
		Rate:             decimal.RequireFromString("0.79"),
		Margin:           decimal.RequireFromString("0.05"),
	})
}

// --- Test Cases ---

func (suite *RatesServiceTestSuite) TestGetRate_CachedRow() {
	ctx := context.Background()

	cached := &domain.ExchangeRate{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "GBP",
		Rate:             decimal.RequireFromString("0.81"),
		Margin:           decimal.RequireFromString("0.05"),
		FetchedAt:        time.Now(),
	}
	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "GBP").Return(cached, nil).Once()

	rate, err := suite.service.GetRate(ctx, "usd", "gbp")

	suite.Require().NoError(err)
	suite.Equal("0.81", rate.Rate.String())
	// effective rate carries the merchant margin
	suite.Equal("0.8505", rate.EffectiveRate().String())
}

func (suite *RatesServiceTestSuite) TestGetRate_FallbackPairOnMiss() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "GBP").
		Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "GBP")

	suite.Require().NoError(err)
	suite.Equal("0.79", rate.Rate.String())
	suite.Equal("0.05", rate.Margin.String())
}

func (suite *RatesServiceTestSuite) TestGetRate_OtherPairMissPropagates() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindExchangeRate", ctx, "EUR", "GBP").
		Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetRate(ctx, "EUR", "GBP")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RatesServiceTestSuite) TestGetRate_InvalidCode() {
	rate, err := suite.service.GetRate(context.Background(), "US", "GBP")

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RatesServiceTestSuite) TestGetTldPricing_NormalizesInput() {
	ctx := context.Background()

	entry := &domain.TldPriceEntry{
		Tld: "co.uk",
		RegistrationPriceByTerm: map[int]decimal.Decimal{
			1: decimal.RequireFromString("6.50"),
		},
	}
	suite.mockPricingRepo.On("FindTldPricing", ctx, "co.uk").Return(entry, nil).Once()

	got, err := suite.service.GetTldPricing(ctx, " .CO.UK ")

	suite.Require().NoError(err)
	suite.Equal("co.uk", got.Tld)
}

func (suite *RatesServiceTestSuite) TestGetTldPricing_MissIsTldNotPriced() {
	ctx := context.Background()

	suite.mockPricingRepo.On("FindTldPricing", ctx, "xyz").
		Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetTldPricing(ctx, "xyz")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrTldNotPriced)
}

func TestRatesServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatesServiceTestSuite))
}
