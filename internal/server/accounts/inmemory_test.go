package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmsantos/transferd/internal/common"
)

func testAccount(username string) *Account {
	return &Account{
		ID:        username + "-id",
		Username:  username,
		Balance:   100,
		CreatedAt: time.Now(),
	}
}

func TestInMemoryRepository_Create(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	created, err := r.Create(ctx, testAccount("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)

	_, err = r.Create(ctx, testAccount("alice"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestInMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.Create(ctx, testAccount("alice"))
	require.NoError(t, err)

	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	// mutating the returned value must not leak into the store
	got.Balance = 999999
	got.Favorites = append(got.Favorites, "mallory")

	fresh, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), fresh.Balance)
	assert.Empty(t, fresh.Favorites)
}

func TestInMemoryRepository_GetByUsername_NotFound(t *testing.T) {
	r := NewInMemoryRepository()

	_, err := r.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryRepository_ApplyDelta(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	_, err := r.Create(ctx, testAccount("alice"))
	require.NoError(t, err)

	balance, err := r.ApplyDelta(ctx, "alice", -150)
	require.NoError(t, err)
	assert.Equal(t, int64(-50), balance, "overdraft is not rejected at the store level")

	_, err = r.ApplyDelta(ctx, "ghost", 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInMemoryRepository_List_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	for _, username := range []string{"zoe", "amy", "mia"} {
		_, err := r.Create(ctx, testAccount(username))
		require.NoError(t, err)
	}

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "zoe", list[0].Username)
	assert.Equal(t, "amy", list[1].Username)
	assert.Equal(t, "mia", list[2].Username)
}
