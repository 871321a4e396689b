// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Public_OmitsSecrets(t *testing.T) {
	token := "secret-token"
	expires := time.Now().Add(time.Hour)
	u := User{
		ID:                "u1",
		Email:             StringPtr("alice@x.com"),
		Username:          StringPtr("alice"),
		PasswordHash:      "deadbeef.cafe",
		Role:              RoleStudent,
		IsActive:          true,
		ResetToken:        &token,
		ResetTokenExpires: &expires,
	}

	b, err := json.Marshal(u.Public())
	require.NoError(t, err)

	body := string(b)
	assert.NotContains(t, body, "deadbeef")
	assert.NotContains(t, body, token)
	assert.Contains(t, body, `"email":"alice@x.com"`)
	assert.Contains(t, body, `"role":"student"`)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleInstructor.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("x"))
	assert.Equal(t, "x", StringValue(StringPtr("x")))
	assert.Equal(t, "", StringValue(nil))
}

func TestSession_IsExpiredAt(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, s.IsExpiredAt(now))
	assert.True(t, s.IsExpiredAt(now.Add(time.Minute)))
	assert.True(t, s.IsExpiredAt(now.Add(2*time.Minute)))
}

func TestAppBuildInfo_Defaults(t *testing.T) {
	info := NewAppBuildInfo("", "2026-01-01", "")
	assert.Equal(t, "N/A", info.BuildVersion())
	assert.Equal(t, "2026-01-01", info.BuildDate())
	assert.Contains(t, info.String(), "Build commit: N/A")
}
