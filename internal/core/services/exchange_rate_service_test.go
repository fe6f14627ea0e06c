package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	txManager    *fakeTxManager
	rateRepo     *MockExchangeRateRepository
	currencyRepo *MockCurrencyRepository
	cache        *MockRateCache
	audit        *MockAuditSvc
	service      portssvc.ExchangeRateSvcFacade
	ctx          context.Context
	today        time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.txManager = &fakeTxManager{}
	suite.rateRepo = new(MockExchangeRateRepository)
	suite.currencyRepo = new(MockCurrencyRepository)
	suite.cache = new(MockRateCache)
	suite.audit = new(MockAuditSvc)
	suite.ctx = context.Background()
	suite.today = date(2024, time.March, 10)
	suite.service = services.NewExchangeRateService(
		suite.txManager,
		suite.rateRepo,
		suite.currencyRepo,
		suite.audit,
		services.WithBaseCurrency("kes"),
		services.WithStaleAfterDays(3),
		services.WithRateCache(suite.cache),
		services.WithExchangeRateClock(func() time.Time { return suite.today }),
	)
}

func (suite *ExchangeRateServiceTestSuite) TearDownTest() {
	suite.rateRepo.AssertExpectations(suite.T())
	suite.currencyRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
	suite.audit.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestBaseCurrency_Normalised() {
	suite.Equal("KES", suite.service.BaseCurrency())
	suite.Equal(3, suite.service.StaleAfterDays())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_BaseCurrencyIsIdentity() {
	converted, err := suite.service.ConvertToBase(suite.ctx, dec("1250.456"), "kes", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("1250.46")))
	suite.rateRepo.AssertNotCalled(suite.T(), "FindRateOnOrBefore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_CacheHit() {
	suite.cache.On("Get", suite.ctx, "USD", "KES", suite.today).Return(dec("129.5"), true).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("100"), "USD", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("12950")))
	suite.rateRepo.AssertNotCalled(suite.T(), "FindRateOnOrBefore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_DirectRateIsCached() {
	suite.cache.On("Get", suite.ctx, "USD", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "USD", "KES", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("130"), EffectiveDate: date(2024, time.March, 8)}, nil).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "KES", "USD", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.cache.On("Set", suite.ctx, "USD", "KES", suite.today, decimalEq(dec("130"))).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("2.5"), "usd", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("325")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_FallsBackToInverse() {
	suite.cache.On("Get", suite.ctx, "EUR", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "EUR", "KES", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "KES", "EUR", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "KES", ToCurrencyCode: "EUR", Rate: dec("0.007")}, nil).Once()
	inverse := decimal.NewFromInt(1).DivRound(dec("0.007"), services.RatePrecision)
	suite.cache.On("Set", suite.ctx, "EUR", "KES", suite.today, decimalEq(inverse)).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("7"), "EUR", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("1000")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_NewerInverseRateWins() {
	suite.cache.On("Get", suite.ctx, "USD", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "USD", "KES", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("130"), EffectiveDate: date(2024, time.March, 1)}, nil).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "KES", "USD", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "KES", ToCurrencyCode: "USD", Rate: dec("0.008"), EffectiveDate: date(2024, time.March, 8)}, nil).Once()
	suite.cache.On("Set", suite.ctx, "USD", "KES", suite.today, decimalEq(dec("125"))).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("2"), "USD", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("250")), converted.String())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_SameDayPrefersDirectRate() {
	effective := date(2024, time.March, 8)
	suite.cache.On("Get", suite.ctx, "USD", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "USD", "KES", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("130"), EffectiveDate: effective}, nil).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "KES", "USD", suite.today).
		Return(&domain.ExchangeRate{FromCurrencyCode: "KES", ToCurrencyCode: "USD", Rate: dec("0.008"), EffectiveDate: effective}, nil).Once()
	suite.cache.On("Set", suite.ctx, "USD", "KES", suite.today, decimalEq(dec("130"))).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("2"), "USD", suite.today)

	suite.Require().NoError(err)
	suite.Require().NotNil(converted)
	suite.True(converted.Equal(dec("260")), converted.String())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_MissingRateIsNotAnError() {
	suite.cache.On("Get", suite.ctx, "GBP", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "GBP", "KES", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "KES", "GBP", suite.today).Return(nil, apperrors.ErrNotFound).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("10"), "GBP", suite.today)

	suite.NoError(err)
	suite.Nil(converted)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_RepoErrorPropagates() {
	suite.cache.On("Get", suite.ctx, "USD", "KES", suite.today).Return(decimal.Zero, false).Once()
	suite.rateRepo.On("FindRateOnOrBefore", suite.ctx, "USD", "KES", suite.today).Return(nil, assert.AnError).Once()

	converted, err := suite.service.ConvertToBase(suite.ctx, dec("10"), "USD", suite.today)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(converted)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertToBase_InvalidCode() {
	converted, err := suite.service.ConvertToBase(suite.ctx, dec("10"), "US", suite.today)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(converted)
}

func (suite *ExchangeRateServiceTestSuite) TestRateHealth_ClassifiesCurrencies() {
	suite.currencyRepo.On("ListCurrencies", suite.ctx, true).Return([]domain.Currency{
		{CurrencyCode: "KES"},
		{CurrencyCode: "USD"},
		{CurrencyCode: "EUR"},
		{CurrencyCode: "GBP"},
	}, nil).Once()
	suite.rateRepo.On("LatestEffectiveDates", suite.ctx, "KES").Return(map[string]time.Time{
		"USD": date(2024, time.March, 7),
		"EUR": date(2024, time.March, 1),
	}, nil).Once()

	health, err := suite.service.RateHealth(suite.ctx, time.Time{})

	suite.Require().NoError(err)
	suite.Require().Len(health, 3)

	byCode := make(map[string]domain.RateHealth, len(health))
	for _, h := range health {
		byCode[h.CurrencyCode] = h
	}
	suite.NotContains(byCode, "KES")
	suite.Equal(domain.RateFresh, byCode["USD"].Status)
	suite.Equal(3, byCode["USD"].DaysSinceEffective)
	suite.Equal(domain.RateStale, byCode["EUR"].Status)
	suite.Equal(9, byCode["EUR"].DaysSinceEffective)
	suite.Equal(domain.RateMissing, byCode["GBP"].Status)
	suite.Nil(byCode["GBP"].LatestEffective)
}

func (suite *ExchangeRateServiceTestSuite) TestRateHealth_ListError() {
	suite.currencyRepo.On("ListCurrencies", suite.ctx, true).Return(nil, assert.AnError).Once()

	health, err := suite.service.RateHealth(suite.ctx, suite.today)

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(health)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_Validation() {
	cases := map[string]dto.UpsertExchangeRateRequest{
		"zero rate":     {FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: decimal.Zero, EffectiveDate: suite.today},
		"negative rate": {FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("-1"), EffectiveDate: suite.today},
		"same currency": {FromCurrencyCode: "usd", ToCurrencyCode: "USD", Rate: dec("1"), EffectiveDate: suite.today},
		"no date":       {FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("130")},
		"bad source":    {FromCurrencyCode: "USD", ToCurrencyCode: "KES", Rate: dec("130"), EffectiveDate: suite.today, Source: "scraped"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			rate, err := suite.service.UpsertRate(suite.ctx, req, "user-1")

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Nil(rate)
		})
	}
	suite.Zero(suite.txManager.calls)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_UnknownCurrency() {
	suite.currencyRepo.On("FindCurrencyByCode", suite.ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.currencyRepo.On("FindCurrencyByCode", suite.ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.UpsertRate(suite.ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XYZ",
		Rate:             dec("2"),
		EffectiveDate:    suite.today,
	}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rate)
	suite.Zero(suite.txManager.calls)
}

func (suite *ExchangeRateServiceTestSuite) expectKnownCurrencies(codes ...string) {
	for _, code := range codes {
		suite.currencyRepo.On("FindCurrencyByCode", suite.ctx, code).Return(&domain.Currency{CurrencyCode: code}, nil).Once()
	}
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_NewRate() {
	suite.expectKnownCurrencies("USD", "KES")
	suite.rateRepo.On("UpsertExchangeRate", suite.ctx, nil, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "USD" && r.ToCurrencyCode == "KES" &&
			r.Rate.Equal(dec("129.12345679")) && r.Source == domain.RateSourceManual &&
			r.EffectiveDate.Equal(date(2024, time.March, 9)) && r.CreatedBy == "user-1"
	})).Return(func(rate domain.ExchangeRate) *domain.ExchangeRate {
		return &rate
	}, nil).Once()
	suite.audit.On("Record", suite.ctx, nil, auditAction(domain.ActionCreate, domain.ModelExchangeRate)).Return(nil).Once()
	suite.cache.On("InvalidatePair", suite.ctx, "USD", "KES").Once()

	rate, err := suite.service.UpsertRate(suite.ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: " usd ",
		ToCurrencyCode:   "kes",
		Rate:             dec("129.123456789"),
		EffectiveDate:    time.Date(2024, time.March, 9, 15, 30, 0, 0, time.UTC),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("USD", rate.FromCurrencyCode)
	suite.Equal(1, suite.txManager.calls)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_ReplacesExistingRate() {
	suite.expectKnownCurrencies("USD", "KES")
	existing := &domain.ExchangeRate{
		ExchangeRateID:   "rate-existing",
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "KES",
		Rate:             dec("131"),
		EffectiveDate:    suite.today,
		Source:           domain.RateSourceAPI,
	}
	suite.rateRepo.On("UpsertExchangeRate", suite.ctx, nil, mock.AnythingOfType("domain.ExchangeRate")).Return(existing, nil).Once()
	suite.audit.On("Record", suite.ctx, nil, mock.MatchedBy(func(c domain.AuditChange) bool {
		return c.Action == domain.ActionUpdate && c.ModelID == "rate-existing"
	})).Return(nil).Once()
	suite.cache.On("InvalidatePair", suite.ctx, "USD", "KES").Once()

	rate, err := suite.service.UpsertRate(suite.ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "KES",
		Rate:             dec("131"),
		EffectiveDate:    suite.today,
		Source:           domain.RateSourceAPI,
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("rate-existing", rate.ExchangeRateID)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_AuditFailureKeepsCache() {
	suite.expectKnownCurrencies("USD", "KES")
	suite.rateRepo.On("UpsertExchangeRate", suite.ctx, nil, mock.AnythingOfType("domain.ExchangeRate")).
		Return(&domain.ExchangeRate{ExchangeRateID: "rate-1"}, nil).Once()
	suite.audit.On("Record", suite.ctx, nil, mock.Anything).Return(assert.AnError).Once()

	rate, err := suite.service.UpsertRate(suite.ctx, dto.UpsertExchangeRateRequest{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "KES",
		Rate:             dec("130"),
		EffectiveDate:    suite.today,
	}, "user-1")

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(rate)
	suite.cache.AssertNotCalled(suite.T(), "InvalidatePair", mock.Anything, mock.Anything, mock.Anything)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
