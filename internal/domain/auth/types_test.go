package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestUserStatus_Valid(t *testing.T) {
	assert.True(t, UserStatusEnabled.Valid())
	assert.True(t, UserStatusBlocked.Valid())
	assert.False(t, UserStatus("disabled").Valid())
}

func TestUser_Flags(t *testing.T) {
	blocked := User{Status: UserStatusBlocked, Role: RoleUser}
	assert.True(t, blocked.IsBlocked())
	assert.False(t, blocked.IsAdmin())

	admin := User{Status: UserStatusEnabled, Role: RoleAdmin}
	assert.False(t, admin.IsBlocked())
	assert.True(t, admin.IsAdmin())
}

func TestResponse_Tokens(t *testing.T) {
	resp := Response{AccessToken: "access", RefreshToken: "refresh"}

	tokens := resp.Tokens()

	assert.Equal(t, Tokens{AccessToken: "access", RefreshToken: "refresh"}, tokens)
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		wantErr string
	}{
		{name: "valid", creds: Credentials{Name: "alice", Password: "secret"}},
		{name: "single char name ok for login", creds: Credentials{Name: "a", Password: "secret"}},
		{name: "missing name", creds: Credentials{Password: "secret"}, wantErr: "username is required"},
		{name: "whitespace name", creds: Credentials{Name: "   ", Password: "secret"}, wantErr: "username is required"},
		{name: "name too long", creds: Credentials{Name: longString(51), Password: "secret"}, wantErr: "username is too long"},
		{name: "missing password", creds: Credentials{Name: "alice"}, wantErr: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr bool
	}{
		{name: "valid", reg: Registration{Name: "alice", Password: "secret"}},
		{name: "name too short", reg: Registration{Name: "ab", Password: "secret"}, wantErr: true},
		{name: "name too long", reg: Registration{Name: longString(51), Password: "secret"}, wantErr: true},
		{name: "password too short", reg: Registration{Name: "alice", Password: "12345"}, wantErr: true},
		{name: "password too long", reg: Registration{Name: "alice", Password: longString(101)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
