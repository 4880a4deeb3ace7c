package permissions_test

import (
	"slices"
	"testing"

	"bunkhouse/permissions"
)

func TestGet(t *testing.T) {
	perms := permissions.Get()
	if perms == nil {
		t.Fatal("expected embedded permissions to load, got nil")
	}

	if len(perms.Endpoints) == 0 {
		t.Error("expected at least one endpoint entry")
	}
}

func TestFindPermissions_AdminOnlyBookingRoutes(t *testing.T) {
	perms := permissions.Get()
	if perms == nil {
		t.Fatal("expected embedded permissions to load, got nil")
	}

	adminOnly := []struct {
		path   string
		method string
	}{
		{path: "/v1/bookings", method: "GET"},
		{path: "/v1/bookings/anonymous", method: "POST"},
		{path: "/v1/bookings/{id}", method: "GET"},
		{path: "/v1/bookings/{id}/status", method: "PATCH"},
		{path: "/v1/bookings/{id}/payment", method: "PATCH"},
		{path: "/v1/bookings/{id}/receipt", method: "GET"},
	}

	for _, route := range adminOnly {
		permission := perms.FindPermissions(route.path, route.method)

		if permission.Skip {
			t.Errorf("%s %s: expected skip=false", route.method, route.path)
		}

		if !slices.Equal(permission.Permissions, []string{"admin"}) {
			t.Errorf("%s %s: expected permissions [admin], got %v", route.method, route.path, permission.Permissions)
		}
	}
}

func TestFindPermissions_AuthenticatedBookingRoutes(t *testing.T) {
	perms := permissions.Get()
	if perms == nil {
		t.Fatal("expected embedded permissions to load, got nil")
	}

	// Empty permissions means any authenticated caller, so the list must
	// stay empty only on routes scoped to the caller's own data.
	ownData := []struct {
		path   string
		method string
	}{
		{path: "/v1/bookings", method: "POST"},
		{path: "/v1/bookings/mybookings", method: "GET"},
	}

	for _, route := range ownData {
		permission := perms.FindPermissions(route.path, route.method)

		if permission.Skip {
			t.Errorf("%s %s: expected skip=false", route.method, route.path)
		}

		if len(permission.Permissions) != 0 {
			t.Errorf("%s %s: expected no role restriction, got %v", route.method, route.path, permission.Permissions)
		}
	}
}

func TestFindPermissions_UnknownRoute(t *testing.T) {
	perms := permissions.Get()
	if perms == nil {
		t.Fatal("expected embedded permissions to load, got nil")
	}

	permission := perms.FindPermissions("/v1/unknown", "GET")

	if permission.Path != "" || permission.Skip || len(permission.Permissions) != 0 {
		t.Errorf("expected zero permission for unknown route, got %+v", permission)
	}
}
