package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-accounts/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	saved, err := storage.CreateUser(ctx, models.User{
		Username: "alice",
		Password: "secret",
		LoggedIn: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "alice", saved.Username)
	// Пароль хранится как есть.
	assert.Equal(t, "secret", saved.Password)
	assert.True(t, saved.LoggedIn)
	assert.WithinDuration(t, time.Now(), saved.CreationDate, time.Minute)
	assert.Nil(t, saved.Birthday)
}

func TestStorage_CreateUser_DuplicateUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = storage.CreateUser(ctx, models.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestStorage_ExistsByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	exists, err := storage.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	exists, err = storage.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorage_FindUserByID(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	saved, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	found, err := storage.FindUserByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, "alice", found.Username)

	_, err = storage.FindUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_MarkUserLoggedIn(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	saved, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// Сбрасываем признак входа напрямую, чтобы проверить условное обновление.
	_, err = storage.DB.Exec(`UPDATE users SET logged_in = FALSE WHERE id = $1`, saved.ID)
	require.NoError(t, err)

	// Неверный пароль молча ничего не меняет.
	require.NoError(t, storage.MarkUserLoggedIn(ctx, "alice", "wrong"))
	found, err := storage.FindUserByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, found.LoggedIn)

	// Совпавшая пара имя/пароль выставляет признак входа.
	require.NoError(t, storage.MarkUserLoggedIn(ctx, "alice", "secret"))
	found, err = storage.FindUserByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, found.LoggedIn)
}

func TestStorage_FindUserByUsernameAndPassword(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	found, err := storage.FindUserByUsernameAndPassword(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = storage.FindUserByUsernameAndPassword(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_UpdateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	saved, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	birthday := time.Date(1990, 12, 24, 0, 0, 0, 0, time.UTC)
	saved.Username = "newalice"
	saved.Birthday = &birthday
	saved.LoggedIn = false

	require.NoError(t, storage.UpdateUser(ctx, saved))

	found, err := storage.FindUserByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "newalice", found.Username)
	assert.False(t, found.LoggedIn)
	require.NotNil(t, found.Birthday)
	assert.True(t, found.Birthday.Equal(birthday))
}

func TestStorage_UpdateUser_NotFound(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	err := storage.UpdateUser(context.Background(), &models.User{
		ID:       9999,
		Username: "ghost",
		LoggedIn: true,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStorage_UpdateUser_DuplicateUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.CreateUser(ctx, models.User{Username: "alice", Password: "p"})
	require.NoError(t, err)
	bob, err := storage.CreateUser(ctx, models.User{Username: "bob", Password: "p"})
	require.NoError(t, err)

	bob.Username = "alice"
	err = storage.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestStorage_ListUsersOrderedByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	// Вставляем в обратном алфавитном порядке.
	_, err := storage.CreateUser(ctx, models.User{Username: "bravo", Password: "p"})
	require.NoError(t, err)
	_, err = storage.CreateUser(ctx, models.User{Username: "alpha", Password: "p"})
	require.NoError(t, err)

	users, err := storage.ListUsersOrderedByUsername(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alpha", users[0].Username)
	assert.Equal(t, "bravo", users[1].Username)
}

func TestStorage_ContextCancelled(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.ExistsByUsername(ctx, "alice")
	assert.ErrorIs(t, err, context.Canceled)
}
