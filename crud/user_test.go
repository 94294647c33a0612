package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialnet/domain"
	"socialnet/errs"
)

func TestUserService_CreateHashesCredentials(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	user := domain.User{
		Username: "emi",
		Email:    "Emi@Example.COM",
		Password: "password123",
	}
	require.NoError(t, us.Create(&user))

	assert.Empty(t, user.Password, "plain password must be cleared")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.Remember, "a remember token must be generated")
	assert.NotEmpty(t, user.RememberHash)
	assert.Equal(t, "emi@example.com", user.Email, "email must be normalized")
}

func TestUserService_CreateValidation(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	for name, user := range map[string]domain.User{
		"missing username": {Email: "a@example.com", Password: "password123"},
		"missing email":    {Username: "emi", Password: "password123"},
		"bad email":        {Username: "emi", Email: "not-an-email", Password: "password123"},
		"short password":   {Username: "emi", Email: "a@example.com", Password: "short"},
	} {
		err := us.Create(&user)
		require.Error(t, err, name)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err), name)
	}
}

func TestUserService_DuplicateUsername(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	first := domain.User{Username: "emi", Email: "emi@example.com", Password: "password123"}
	require.NoError(t, us.Create(&first))

	second := domain.User{Username: "emi", Email: "other@example.com", Password: "password123"}
	err := us.Create(&second)
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
	assert.Equal(t, "Username already taken.", errs.ErrorMessage(err))
}

func TestUserService_Authenticate(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	user := domain.User{Username: "emi", Email: "emi@example.com", Password: "password123"}
	require.NoError(t, us.Create(&user))

	got, err := us.Authenticate("emi", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// Wrong password and unknown username fail with the same message.
	_, err = us.Authenticate("emi", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	wrongPassword := errs.ErrorMessage(err)

	_, err = us.Authenticate("nobody", "password123")
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, wrongPassword, errs.ErrorMessage(err))
}

func TestUserService_ByRemember(t *testing.T) {
	db := testDB(t)
	us := NewUserService(db, "test-hmac-key", "test-pepper")

	user := domain.User{Username: "emi", Email: "emi@example.com", Password: "password123"}
	require.NoError(t, us.Create(&user))

	got, err := us.ByRemember(user.Remember)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = us.ByRemember("bogus-token")
	require.Error(t, err)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
