package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validUserInput() CreateUserInput {
	return CreateUserInput{
		Username:    "jsmith",
		Password:    "supersecret",
		Email:       "jsmith@example.org",
		FullName:    "John Smith",
		PhoneNumber: "+1-555-0101",
	}
}

func TestUserService_Create(t *testing.T) {
	env := setupTestEnv(t)

	user, err := env.userService.Create(validUserInput())
	require.NoError(t, err)
	require.Equal(t, "jsmith", user.Username)
	require.True(t, user.IsActive)
	require.NotEqual(t, "supersecret", user.PasswordHash)
}

func TestUserService_Create_ShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	input := validUserInput()
	input.Password = "short"
	_, err := env.userService.Create(input)
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUserService_Create_IdentityCollisions(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	// any single matching attribute blocks the new account
	cases := map[string]func(*CreateUserInput){
		"username":  func(in *CreateUserInput) { in.Username = "jsmith" },
		"email":     func(in *CreateUserInput) { in.Email = "jsmith@example.org" },
		"full name": func(in *CreateUserInput) { in.FullName = "John Smith" },
		"phone":     func(in *CreateUserInput) { in.PhoneNumber = "+1-555-0101" },
	}
	for name, mutate := range cases {
		input := CreateUserInput{
			Username:    "other",
			Password:    "supersecret",
			Email:       "other@example.org",
			FullName:    "Other Person",
			PhoneNumber: "+1-555-0199",
		}
		mutate(&input)
		_, err := env.userService.Create(input)
		require.ErrorIs(t, err, ErrUserIdentityTaken, "collision on %s", name)
	}
}

func TestUserService_Login(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	user, err := env.userService.Login("jsmith", "supersecret")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestUserService_Login_Failures(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	_, err = env.userService.Login("jsmith", "wrongpassword")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.userService.Login("nobody", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// deactivated accounts look exactly like bad credentials
	require.NoError(t, env.userService.Delete(created.ID, true))
	_, err = env.userService.Login("jsmith", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_SoftDelete(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	require.NoError(t, env.userService.Delete(created.ID, true))

	user, err := env.userService.GetByID(created.ID)
	require.NoError(t, err)
	require.False(t, user.IsActive)
	require.NotNil(t, user.DeletedAt)
}

func TestUserService_HardDelete(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	require.NoError(t, env.userService.Delete(created.ID, false))

	_, err = env.userService.GetByID(created.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ChangePassword(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)

	err = env.userService.ChangePassword(created.ID, "wrongpassword", "newpassword1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = env.userService.ChangePassword(created.ID, "supersecret", "supersecret")
	require.ErrorIs(t, err, ErrPasswordUnchanged)

	err = env.userService.ChangePassword(created.ID, "supersecret", "newpassword1")
	require.NoError(t, err)

	_, err = env.userService.Login("jsmith", "newpassword1")
	require.NoError(t, err)
}

func TestUserService_ChangeRole(t *testing.T) {
	env := setupTestEnv(t)

	created, err := env.userService.Create(validUserInput())
	require.NoError(t, err)
	require.False(t, created.IsAdmin)

	require.NoError(t, env.userService.ChangeRole(created.ID, true))

	user, err := env.userService.GetByID(created.ID)
	require.NoError(t, err)
	require.True(t, user.IsAdmin)
}

func TestUserService_Update_CollisionWithOtherUser(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.userService.Create(validUserInput())
	require.NoError(t, err)
	second, err := env.userService.Create(CreateUserInput{
		Username:    "mgarcia",
		Password:    "supersecret",
		Email:       "mgarcia@example.org",
		FullName:    "Maria Garcia",
		PhoneNumber: "+1-555-0102",
	})
	require.NoError(t, err)

	taken := "jsmith"
	_, err = env.userService.Update(second.ID, UpdateUserInput{Username: &taken})
	require.ErrorIs(t, err, ErrUserIdentityTaken)

	// patching a user with their own values is fine
	own := "mgarcia"
	updated, err := env.userService.Update(second.ID, UpdateUserInput{Username: &own})
	require.NoError(t, err)
	require.Equal(t, "mgarcia", updated.Username)
}
