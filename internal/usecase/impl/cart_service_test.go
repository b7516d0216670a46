package impl

import (
	"context"
	"math"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem_MergesQuantities(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddItem(ctx, client, usecase.AddToCartInput{ProductID: testSensor.ID, Quantity: 2})
	require.NoError(t, err)

	cart, err := f.cart.AddItem(ctx, client, usecase.AddToCartInput{ProductID: testSensor.ID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 5, cart.Quantity(testSensor.ID))
	assert.True(t, decimal.NewFromFloat(62.5).Equal(cart.Total()))
}

func TestCartService_AddItem_ZeroQuantityMeansOne(t *testing.T) {
	f := newFixture(newMemoryState())
	client := entity.NewClientID()

	cart, err := f.cart.AddItem(context.Background(), client, usecase.AddToCartInput{ProductID: testServo.ID})

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Quantity(testServo.ID))
}

func TestCartService_AddItem_NegativeQuantity(t *testing.T) {
	f := newFixture(newMemoryState())
	client := entity.NewClientID()

	cart, err := f.cart.AddItem(context.Background(), client, usecase.AddToCartInput{ProductID: testServo.ID, Quantity: -1})

	require.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))
	assert.Equal(t, 0, f.state.saves)
}

func TestCartService_AddProduct_LineQuantityIsBounded(t *testing.T) {
	state := newMemoryState()
	f := newFixture(state)
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, math.MaxInt)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))

	_, err = f.cart.AddProduct(ctx, client, testSensor, entity.MaxLineQuantity)
	require.NoError(t, err)

	cart, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.Error(t, err)
	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQuantity))

	// Neither memory nor the store moved past the limit.
	cart, err = f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxLineQuantity, cart.Quantity(testSensor.ID))
	assert.True(t, cart.Total().IsPositive())

	restored, err := newFixture(state).cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxLineQuantity, restored.Quantity(testSensor.ID))
}

func TestCartService_RemoveLines_KeepsOtherQuantities(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 3)
	require.NoError(t, err)
	_, err = f.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)

	err = f.cart.RemoveLines(ctx, client, []entity.CartLine{
		{Product: testSensor, Quantity: 2},
		{Product: testServo, Quantity: 1},
		{Product: testDisplay, Quantity: 1},
	})
	require.NoError(t, err)

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 1, cart.Quantity(testSensor.ID))
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	f := newFixture(newMemoryState())
	client := entity.NewClientID()

	_, err := f.cart.AddItem(context.Background(), client, usecase.AddToCartInput{ProductID: 999, Quantity: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	notices := f.notifications.Drain(client)
	require.Len(t, notices, 1)
	assert.Equal(t, entity.NotificationError, notices[0].Level)
	assert.Equal(t, "PRODUCT_NOT_FOUND", notices[0].Code)
}

func TestCartService_TotalAfterEachMutation(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	steps := []struct {
		name  string
		apply func() (*entity.Cart, error)
		want  string
	}{
		{"add sensor", func() (*entity.Cart, error) { return f.cart.AddProduct(ctx, client, testSensor, 1) }, "12.5"},
		{"add two displays", func() (*entity.Cart, error) { return f.cart.AddProduct(ctx, client, testDisplay, 2) }, "28.48"},
		{"add servo", func() (*entity.Cart, error) { return f.cart.AddProduct(ctx, client, testServo, 1) }, "32.98"},
		{"remove displays", func() (*entity.Cart, error) { return f.cart.RemoveItem(ctx, client, testDisplay.ID) }, "17"},
	}

	for _, step := range steps {
		cart, err := step.apply()
		require.NoError(t, err, step.name)

		var expected decimal.Decimal
		for _, line := range cart.Lines() {
			expected = expected.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		assert.True(t, expected.Equal(cart.Total()), step.name)
		assert.True(t, decimal.RequireFromString(step.want).Equal(cart.Total()), "%s: got %s", step.name, cart.Total())
	}
}

func TestCartService_StableInsertionOrder(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)
	_, err = f.cart.AddProduct(ctx, client, testDisplay, 1)
	require.NoError(t, err)
	cart, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, testSensor.ID, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, testDisplay.ID, lines[1].Product.ID)
}

func TestCartService_RemoveItem_Idempotent(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	first, err := f.cart.RemoveItem(ctx, client, testSensor.ID)
	require.NoError(t, err)
	second, err := f.cart.RemoveItem(ctx, client, testSensor.ID)
	require.NoError(t, err)

	assert.True(t, first.IsEmpty())
	assert.Equal(t, first.Lines(), second.Lines())

	removedNotices := 0
	for _, n := range f.notifications.Drain(client) {
		if n.Code == "CART_ITEM_REMOVED" {
			removedNotices++
		}
	}
	assert.Equal(t, 1, removedNotices)
}

func TestCartService_RestoresAfterRestart(t *testing.T) {
	state := newMemoryState()
	ctx := context.Background()
	client := entity.NewClientID()

	first := newFixture(state)
	_, err := first.cart.AddProduct(ctx, client, testSensor, 2)
	require.NoError(t, err)
	_, err = first.cart.AddProduct(ctx, client, testServo, 1)
	require.NoError(t, err)
	before, err := first.cart.GetCart(ctx, client)
	require.NoError(t, err)

	restarted := newFixture(state)
	after, err := restarted.cart.GetCart(ctx, client)
	require.NoError(t, err)

	assert.Equal(t, before.Len(), after.Len())
	assert.Equal(t, 2, after.Quantity(testSensor.ID))
	assert.Equal(t, 1, after.Quantity(testServo.ID))
	assert.True(t, before.Total().Equal(after.Total()))
}

func TestCartService_SaveFailureKeepsPreviousState(t *testing.T) {
	state := newMemoryState()
	f := newFixture(state)
	ctx := context.Background()
	client := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, client, testSensor, 1)
	require.NoError(t, err)

	state.saveErr = errors.New("disk full")
	_, err = f.cart.AddProduct(ctx, client, testDisplay, 1)
	require.Error(t, err)

	cart, err := f.cart.GetCart(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Len())
	assert.Equal(t, 0, cart.Quantity(testDisplay.ID))
}

func TestCartService_ClientsAreIsolated(t *testing.T) {
	f := newFixture(newMemoryState())
	ctx := context.Background()
	alice := entity.NewClientID()
	bob := entity.NewClientID()

	_, err := f.cart.AddProduct(ctx, alice, testSensor, 1)
	require.NoError(t, err)

	cart, err := f.cart.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
