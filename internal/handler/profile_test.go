package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/health-tracker/internal/model"
)

func TestProfileLazyCreation(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "jamie@example.com", "secret12")

	var p model.UserProfile
	rec := env.do(t, http.MethodGet, "/v1/profile", pair.Access.Token, "", &p)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, pair.User.ID, p.ID)
	assert.Equal(t, "jamie@example.com", p.Email)
	assert.Equal(t, "jamie", p.Username)
	assert.Nil(t, p.Age)
}

func TestProfilePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "jamie@example.com", "secret12")

	var p model.UserProfile
	rec := env.do(t, http.MethodPut, "/v1/profile", pair.Access.Token,
		`{"full_name":"Jamie Smith","age":31,"health_goals":["run 5k"]}`, &p)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Jamie Smith", p.FullName)
	require.NotNil(t, p.Age)
	assert.EqualValues(t, 31, *p.Age)
	assert.Equal(t, []string{"run 5k"}, p.HealthGoals)

	// a second update with other fields leaves earlier values alone
	rec = env.do(t, http.MethodPut, "/v1/profile", pair.Access.Token,
		`{"weight":70.5}`, &p)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jamie Smith", p.FullName)
	require.NotNil(t, p.Weight)
	assert.Equal(t, 70.5, *p.Weight)
}

func TestProfileUpdateValidation(t *testing.T) {
	env := newTestEnv(t)
	pair := env.signup(t, "jamie@example.com", "secret12")

	rec := env.do(t, http.MethodPut, "/v1/profile", pair.Access.Token, `{"age":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/profile", pair.Access.Token, `{"username":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/profile", "", `{"age":30}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
