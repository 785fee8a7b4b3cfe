package services_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-tg-bot/internal/models"
	"shop-tg-bot/internal/services"
)

// fakeStateDB is an in-memory stand-in for the Redis client
type fakeStateDB struct {
	values map[string]string
	getErr error
}

func (f *fakeStateDB) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeStateDB) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func newService() (*services.UserStateService, *fakeStateDB) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := &fakeStateDB{values: make(map[string]string)}
	return services.NewUserStateService(db, logger), db
}

func TestGetStateDefaultsToStart(t *testing.T) {
	service, _ := newService()

	state, err := service.GetState(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, models.Start, state)
}

func TestStateRoundTrip(t *testing.T) {
	service, db := newService()
	ctx := context.Background()

	require.NoError(t, service.SetState(ctx, 42, models.ViewingCart))

	assert.Equal(t, "viewing_cart", db.values["conv_state:42"])

	state, err := service.GetState(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, models.ViewingCart, state)
}

func TestUnknownTokenFallsBackToStart(t *testing.T) {
	service, db := newService()
	db.values["conv_state:42"] = "some future state"

	state, err := service.GetState(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, models.Start, state)
}

func TestGetStateSurfacesStoreFailure(t *testing.T) {
	service, db := newService()
	db.getErr = errors.New("connection refused")

	_, err := service.GetState(context.Background(), 42)

	assert.Error(t, err)
}

func TestPageCursor(t *testing.T) {
	service, _ := newService()

	assert.Equal(t, 0, service.GetPage(42))

	service.SetPage(42, 3)
	assert.Equal(t, 3, service.GetPage(42))

	// Cursors are per user.
	assert.Equal(t, 0, service.GetPage(43))
}
