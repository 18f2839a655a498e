package jwt

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-admin/internal/domain/user"
)

func TestIssueAndValidateOperatorToken(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	token, claims, err := mgr.IssueOperatorToken("op-1", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "op-1", claims.Subject)

	_, parsed, err := mgr.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", parsed.Subject)
	assert.Equal(t, user.RoleAdmin, parsed.Role)
}

func TestParseAndValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-a", time.Hour).IssueOperatorToken("op-1", user.RoleOperator)
	require.NoError(t, err)

	_, _, err = NewManager("secret-b", time.Hour).ParseAndValidate(token)
	assert.Error(t, err)
}

func TestParseAndValidateRejectsExpiredToken(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	token, _, err := mgr.IssueOperatorToken("op-1", user.RoleOperator)
	require.NoError(t, err)

	_, _, err = mgr.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestRoleAllowed(t *testing.T) {
	claims := NewOperatorClaims("op-1", user.RoleOperator, time.Hour)

	assert.NoError(t, RoleAllowed(claims, user.RoleAdmin, user.RoleOperator))
	assert.Error(t, RoleAllowed(claims, user.RoleAdmin))
}

func TestFromAuthorizationHeaderAndQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/admin/overview", nil)
	r.Header.Set("Authorization", "Bearer abc")
	token, err := FromAuthorization(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	// WebSocket clients pass the token as a query parameter instead
	r = httptest.NewRequest("GET", "/admin/live?Authorization=xyz", nil)
	token, err = FromAuthorization(r)
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	r = httptest.NewRequest("GET", "/admin/overview", nil)
	_, err = FromAuthorization(r)
	assert.Error(t, err)
}
