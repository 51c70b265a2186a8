package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDatabase_BootstrapsEmptyDatabase(t *testing.T) {
	env := setupHandlerTestEnv(t)

	// No accounts exist yet, so no credentials are demanded.
	w := env.doJSON(t, http.MethodPost, "/api/init/database", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The seeded admin can log in afterwards.
	w = env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin",
		"password": "admin12345",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestInitDatabase_RequiresAdminOncePopulated(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/init/database", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/init/database", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	member := env.createUser(t, "peon", false)
	w = env.doJSON(t, http.MethodPost, "/api/init/database", nil, env.authCookie(t, member))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestInitDatabase_ReseedNeedsForce(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/init/database", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	admin := env.createUser(t, "boss", true)
	cookie := env.authCookie(t, admin)

	w = env.doJSON(t, http.MethodPost, "/api/init/database", nil, cookie)
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.doJSON(t, http.MethodPost, "/api/init/database?force=true", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
}
