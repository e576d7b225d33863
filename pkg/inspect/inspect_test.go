package inspect_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
	"github.com/aussiebroadwan/sessionprobe/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestInspect_Scenarios(t *testing.T) {
	t.Run("empty storage", func(t *testing.T) {
		res := inspect.Inspect(inspect.MapStorage{}, inspect.StaticPath("/"))

		require.False(t, res.HasToken)
		require.False(t, res.HasUser)
		require.Nil(t, res.User)
		require.False(t, res.IsOnAdminRoute)
		require.False(t, res.IsAdmin)
		require.NoError(t, res.UserErr)
	})

	t.Run("admin on admin route", func(t *testing.T) {
		storage := inspect.MapStorage{
			"token": "abc",
			"user":  `{"role":"admin"}`,
		}
		res := inspect.Inspect(storage, inspect.StaticPath("/admin"))

		require.True(t, res.HasToken)
		require.True(t, res.HasUser)
		require.Equal(t, inspect.User{"role": "admin"}, res.User)
		require.True(t, res.IsOnAdminRoute)
		require.True(t, res.IsAdmin)
	})

	t.Run("malformed user record", func(t *testing.T) {
		storage := inspect.MapStorage{"user": "{not valid json"}

		require.NotPanics(t, func() {
			res := inspect.Inspect(storage, inspect.StaticPath("/"))

			require.True(t, res.HasUser)
			require.Nil(t, res.User)
			require.Error(t, res.UserErr)
			require.False(t, res.IsAdmin)
		})
	})
}

func TestInspect_Token(t *testing.T) {
	tests := []struct {
		name    string
		storage inspect.MapStorage
		want    bool
	}{
		{"absent", inspect.MapStorage{}, false},
		{"empty string", inspect.MapStorage{"token": ""}, false},
		{"opaque", inspect.MapStorage{"token": "abc"}, true},
		{"whitespace", inspect.MapStorage{"token": " "}, true},
		{"not a jwt", inspect.MapStorage{"token": "a.b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := inspect.Inspect(tt.storage, inspect.StaticPath("/"))
			require.Equal(t, tt.want, res.HasToken)
		})
	}
}

func TestInspect_User(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		hasUser bool
		user    inspect.User
		isAdmin bool
		failed  bool
	}{
		{"empty string is absent", "", false, nil, false, false},
		{"admin", `{"role":"admin","name":"a"}`, true, inspect.User{"role": "admin", "name": "a"}, true, false},
		{"customer", `{"role":"customer"}`, true, inspect.User{"role": "customer"}, false, false},
		{"role is case sensitive", `{"role":"Admin"}`, true, inspect.User{"role": "Admin"}, false, false},
		{"role not a string", `{"role":1}`, true, inspect.User{"role": float64(1)}, false, false},
		{"no role", `{}`, true, inspect.User{}, false, false},
		{"json null", `null`, true, nil, false, false},
		{"array", `["admin"]`, true, nil, false, true},
		{"string", `"admin"`, true, nil, false, true},
		{"truncated", `{"role":`, true, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := inspect.MapStorage{"user": tt.raw}
			res := inspect.Inspect(storage, inspect.StaticPath("/"))

			require.Equal(t, tt.hasUser, res.HasUser)
			require.Equal(t, tt.user, res.User)
			require.Equal(t, tt.isAdmin, res.IsAdmin)
			if tt.failed {
				require.Error(t, res.UserErr)
			} else {
				require.NoError(t, res.UserErr)
			}
		})
	}
}

func TestInspect_AdminRoute(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/admin", true},
		{"/admin/", false},
		{"/Admin", false},
		{"/ADMIN", false},
		{"/admin/orders", false},
		{"/admins", false},
		{"admin", false},
		{"/checkout/admin", false},
		{"", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := inspect.Inspect(inspect.MapStorage{}, inspect.StaticPath(tt.path))
			require.Equal(t, tt.want, res.IsOnAdminRoute)
		})
	}
}

func TestInspect_Idempotent(t *testing.T) {
	storage := inspect.MapStorage{
		"token": "abc",
		"user":  `{"role":"admin","cart":{"items":2}}`,
	}
	path := inspect.StaticPath("/admin")

	first := inspect.Inspect(storage, path)
	second := inspect.Inspect(storage, path)
	require.Equal(t, first, second)

	// Storage must not be touched by an inspection.
	require.Equal(t, inspect.MapStorage{
		"token": "abc",
		"user":  `{"role":"admin","cart":{"items":2}}`,
	}, storage)
}

func TestResult_JSON(t *testing.T) {
	t.Run("malformed user is null with a reason", func(t *testing.T) {
		res := inspect.Inspect(inspect.MapStorage{"user": "{bad"}, inspect.StaticPath("/"))

		raw, err := json.Marshal(res)
		require.NoError(t, err)

		var wire map[string]any
		require.NoError(t, json.Unmarshal(raw, &wire))
		require.Nil(t, wire["user"])
		require.Equal(t, true, wire["hasUser"])
		require.Contains(t, wire["userError"], "decode user record")
	})

	t.Run("stored null has no reason", func(t *testing.T) {
		res := inspect.Inspect(inspect.MapStorage{"user": "null"}, inspect.StaticPath("/"))

		raw, err := json.Marshal(res)
		require.NoError(t, err)
		require.JSONEq(t,
			`{"hasToken":false,"hasUser":true,"user":null,"isOnAdminRoute":false,"isAdmin":false}`,
			string(raw),
		)
	})

	t.Run("decoded result still narrates the failure", func(t *testing.T) {
		res := inspect.Inspect(inspect.MapStorage{"user": "[1,2]"}, inspect.StaticPath("/"))

		raw, err := json.Marshal(res)
		require.NoError(t, err)

		var decoded inspect.Result
		require.NoError(t, json.Unmarshal(raw, &decoded))
		require.Nil(t, decoded.UserErr)
		require.True(t, decoded.UserMalformed())

		var buf bytes.Buffer
		inspect.Narrate(slog.New(slog.NewTextHandler(&buf, nil)), decoded)
		require.Contains(t, buf.String(), "level=WARN")
		require.Contains(t, buf.String(), "malformed")
	})

	t.Run("user record is returned as stored", func(t *testing.T) {
		res := inspect.Inspect(inspect.MapStorage{
			"token": "abc",
			"user":  `{"role":"admin","id":7}`,
		}, inspect.StaticPath("/admin"))

		raw, err := json.Marshal(res)
		require.NoError(t, err)
		require.JSONEq(t,
			`{"hasToken":true,"hasUser":true,"user":{"role":"admin","id":7},"isOnAdminRoute":true,"isAdmin":true}`,
			string(raw),
		)
	})
}

func TestNew_Unavailable(t *testing.T) {
	_, err := inspect.New(nil, inspect.StaticPath("/"))
	require.ErrorIs(t, err, inspect.ErrUnavailable)

	_, err = inspect.New(inspect.MapStorage{}, nil)
	require.ErrorIs(t, err, inspect.ErrUnavailable)

	i, err := inspect.New(inspect.MapStorage{}, inspect.StaticPath("/"))
	require.NoError(t, err)
	require.NotNil(t, i)
}

func TestInspector_PathFunc(t *testing.T) {
	current := "/"
	i, err := inspect.New(inspect.MapStorage{}, inspect.PathFunc(func() string { return current }))
	require.NoError(t, err)

	require.False(t, i.InspectSession().IsOnAdminRoute)

	current = "/admin"
	require.True(t, i.InspectSession().IsOnAdminRoute)
}

func TestInspector_TokenDetails(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	t.Run("opaque token", func(t *testing.T) {
		i, err := inspect.New(inspect.MapStorage{"token": "abc"}, inspect.StaticPath("/"),
			inspect.WithTokenDetails(nil),
		)
		require.NoError(t, err)

		res := i.InspectSession()
		require.NotNil(t, res.Token)
		require.NotEmpty(t, res.Token.Fingerprint)
		require.False(t, res.Token.JWT)
		require.Nil(t, res.Token.ExpiresAt)
	})

	t.Run("expired jwt", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			},
			Role:   "admin",
			Scopes: []string{"orders:read"},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		i, err := inspect.New(inspect.MapStorage{"token": raw}, inspect.StaticPath("/"),
			inspect.WithTokenDetails([]byte("key")),
			inspect.WithClock(func() time.Time { return now }),
		)
		require.NoError(t, err)

		res := i.InspectSession()
		require.True(t, res.HasToken)
		require.NotNil(t, res.Token)
		require.True(t, res.Token.JWT)
		require.Equal(t, "user-1", res.Token.Subject)
		require.Equal(t, "admin", res.Token.Role)
		require.Equal(t, []string{"orders:read"}, res.Token.Scopes)
		require.True(t, res.Token.Expired)
		require.NotContains(t, res.Token.Fingerprint, raw)
	})

	t.Run("no token no details", func(t *testing.T) {
		i, err := inspect.New(inspect.MapStorage{}, inspect.StaticPath("/"), inspect.WithTokenDetails(nil))
		require.NoError(t, err)
		require.Nil(t, i.InspectSession().Token)
	})
}

func TestInspector_Narration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	i, err := inspect.New(
		inspect.MapStorage{"token": "abc", "user": "{not valid json"},
		inspect.StaticPath("/admin"),
		inspect.WithLogger(logger),
	)
	require.NoError(t, err)

	res := i.InspectSession()
	require.True(t, res.HasUser)
	require.Nil(t, res.User)

	out := buf.String()
	require.Contains(t, out, `"msg":"session token"`)
	require.Contains(t, out, `"has_token":true`)
	require.Contains(t, out, `"level":"WARN"`)
	require.Contains(t, out, "malformed")
	require.Contains(t, out, `"is_on_admin_route":true`)
	require.NotContains(t, out, `"abc"`)
}
