package service

import (
	"context"
	"testing"
	"time"

	"shopkart/internal/checkout"
	"shopkart/internal/config"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutServiceMocks struct {
	productRepo *MockProductRepository
	voucherRepo *MockVoucherRepository
	userRepo    *MockUserRepository
	store       checkout.Store
}

func newTestCheckoutService() (CheckoutService, *checkoutServiceMocks) {
	m := &checkoutServiceMocks{
		productRepo: new(MockProductRepository),
		voucherRepo: new(MockVoucherRepository),
		userRepo:    new(MockUserRepository),
		store:       checkout.NewMemoryStore(),
	}
	cfg := config.CheckoutConfig{PointValue: 100, ShippingFee: 30000}
	svc := NewCheckoutService(m.store, m.productRepo, m.voucherRepo, m.userRepo, cfg, zerolog.Nop())
	return svc, m
}

func TestCheckoutService_Begin_PricesFromCatalogue(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001", "P002"}).Return([]model.Product{
		{ID: "P001", Price: 200000},
		{ID: "P002", Price: 100000, DiscountPercent: 10},
	}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID, RewardPoints: 500}, nil)

	session, total, err := svc.Begin(ctx, userID, []model.OrderItemRequest{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "P002", Quantity: 1},
	})

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID)
	require.Len(t, session.Lines, 2)
	assert.Equal(t, int64(200000), session.Lines[0].UnitPrice)

	assert.Equal(t, int64(490000), total.Subtotal)
	assert.Equal(t, int64(30000), total.ShippingCost)
	assert.Equal(t, int64(520000), total.FinalTotal)

	stored, err := m.store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, stored.ID)
}

func TestCheckoutService_Begin_ReplacesExistingSession(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001"}).Return([]model.Product{{ID: "P001", Price: 50000}}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)

	first, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}})
	require.NoError(t, err)
	second, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 2}})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	stored, err := m.store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
}

func TestCheckoutService_Begin_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P999"}).Return([]model.Product{}, nil)

	session, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P999", Quantity: 1}})

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, session)
}

func TestCheckoutService_ApplyVoucher_TogglesSelection(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001"}).Return([]model.Product{{ID: "P001", Price: 500000}}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)

	_, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}})
	require.NoError(t, err)

	now := time.Now()
	v := &model.Voucher{
		Code: "SAVE10", Kind: model.VoucherPercentage, DiscountValue: 10,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: true,
	}
	m.voucherRepo.On("GetByCode", ctx, "SAVE10").Return(v, nil)

	// Select: 10% of 530,000.
	session, total, err := svc.ApplyVoucher(ctx, userID, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, session.Slots.Regular)
	assert.Equal(t, int64(53000), total.VoucherDiscount)
	assert.Equal(t, int64(477000), total.FinalTotal)

	// Re-apply the same code: deselect.
	session, total, err = svc.ApplyVoucher(ctx, userID, "SAVE10")
	require.NoError(t, err)
	assert.Nil(t, session.Slots.Regular)
	assert.Equal(t, int64(0), total.VoucherDiscount)
	assert.Equal(t, int64(530000), total.FinalTotal)
}

func TestCheckoutService_ApplyVoucher_RegularAndFreeShippingCoexist(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001"}).Return([]model.Product{{ID: "P001", Price: 1000000}}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)

	_, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}})
	require.NoError(t, err)

	now := time.Now()
	maxDiscount := int64(50000)
	m.voucherRepo.On("GetByCode", ctx, "SAVE10").Return(&model.Voucher{
		Code: "SAVE10", Kind: model.VoucherPercentage, DiscountValue: 10, MaxDiscount: &maxDiscount,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: true,
	}, nil)
	m.voucherRepo.On("GetByCode", ctx, "FREESHIP").Return(&model.Voucher{
		Code: "FREESHIP", Kind: model.VoucherFreeShipping,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: true,
	}, nil)

	_, _, err = svc.ApplyVoucher(ctx, userID, "SAVE10")
	require.NoError(t, err)
	session, total, err := svc.ApplyVoucher(ctx, userID, "FREESHIP")
	require.NoError(t, err)

	require.NotNil(t, session.Slots.Regular)
	require.NotNil(t, session.Slots.FreeShipping)
	// Base 1,030,000: capped 50,000 regular discount plus the 30,000 shipping refund.
	assert.Equal(t, int64(80000), total.VoucherDiscount)
	assert.Equal(t, int64(950000), total.FinalTotal)
}

func TestCheckoutService_ApplyVoucher_RejectsIneligible(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001"}).Return([]model.Product{{ID: "P001", Price: 50000}}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID}, nil)

	_, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}})
	require.NoError(t, err)

	now := time.Now()
	m.voucherRepo.On("GetByCode", ctx, "BIG").Return(&model.Voucher{
		Code: "BIG", Kind: model.VoucherFixed, DiscountValue: 50000, MinOrderValue: 1000000,
		StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: true,
	}, nil)

	session, _, err := svc.ApplyVoucher(ctx, userID, "BIG")

	require.Error(t, err)
	assert.Equal(t, model.ErrVoucherMinOrder, err)
	assert.Nil(t, session)

	// The stored session is untouched.
	stored, err := m.store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, stored.Slots.Regular)
}

func TestCheckoutService_SetPoints_ClampsToCap(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestCheckoutService()

	userID := uuid.New()
	m.productRepo.On("GetByIDs", ctx, []string{"P001"}).Return([]model.Product{{ID: "P001", Price: 200000}}, nil)
	m.userRepo.On("GetByID", ctx, userID).Return(&model.User{ID: userID, RewardPoints: 10000}, nil)

	_, _, err := svc.Begin(ctx, userID, []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}})
	require.NoError(t, err)

	// Base 230,000: at most 230,000/2/100 = 1,150 points can be spent.
	session, total, err := svc.SetPoints(ctx, userID, true, 5000)

	require.NoError(t, err)
	assert.True(t, session.UsePoints)
	assert.Equal(t, int64(1150), session.PointsToUse)
	assert.Equal(t, int64(1150), total.PointsUsed)
	assert.Equal(t, int64(115000), total.PointsDiscount)
	assert.Equal(t, int64(115000), total.FinalTotal)
}

func TestCheckoutService_Get_NoSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCheckoutService()

	session, _, err := svc.Get(ctx, uuid.New())

	require.Error(t, err)
	assert.Equal(t, checkout.ErrSessionNotFound, err)
	assert.Nil(t, session)
}
