package permissions_test

import (
	"rendezvous/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	create := data.FindPermissions("/v1/bookings/", "POST")
	assert.True(t, create.Optional)

	validate := data.FindPermissions("/v1/bookings/{id}/validate", "POST")
	assert.ElementsMatch(t, []string{"admin", "superadmin"}, validate.Permissions)

	sweep := data.FindPermissions("/v1/admin/credentials/regenerate", "POST")
	assert.NotContains(t, sweep.Permissions, "user")
}

func TestFindPermissionsUnknown(t *testing.T) {
	data := &permissions.PermissionData{}

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/nope", "GET"))
}

func TestFindPermissionsIgnoresTrailingSlash(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/v1/bookings", "POST").Optional)
	assert.Equal(t, data.FindPermissions("/v1/bookings/mine", "GET"), data.FindPermissions("/v1/bookings/mine/", "GET"))
}
