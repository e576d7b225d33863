package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/sessionprobe/internal/store"
	"github.com/aussiebroadwan/sessionprobe/internal/store/drivers/memory"
	"github.com/aussiebroadwan/sessionprobe/pkg/inspect"
	"github.com/stretchr/testify/require"
)

func TestSessionService_InspectProfile(t *testing.T) {
	ctx := context.Background()
	svc := &SessionService{Store: memory.NewStore(), FingerprintKey: []byte("k")}

	t.Run("empty profile", func(t *testing.T) {
		res, err := svc.InspectProfile(ctx, "shop", "/")
		require.NoError(t, err)
		require.False(t, res.HasToken)
		require.False(t, res.HasUser)
		require.Nil(t, res.User)
		require.False(t, res.IsOnAdminRoute)
		require.Nil(t, res.Token)
	})

	t.Run("seeded admin", func(t *testing.T) {
		require.NoError(t, svc.SetItem(ctx, "shop", inspect.TokenKey, "abc"))
		require.NoError(t, svc.SetItem(ctx, "shop", inspect.UserKey, `{"role":"admin"}`))

		res, err := svc.InspectProfile(ctx, "shop", "/admin")
		require.NoError(t, err)
		require.True(t, res.HasToken)
		require.True(t, res.HasUser)
		require.Equal(t, inspect.User{"role": "admin"}, res.User)
		require.True(t, res.IsOnAdminRoute)
		require.True(t, res.IsAdmin)
		require.NotNil(t, res.Token)
		require.False(t, res.Token.JWT)
	})

	t.Run("malformed user", func(t *testing.T) {
		require.NoError(t, svc.SetItem(ctx, "shop", inspect.UserKey, "{not valid json"))

		res, err := svc.InspectProfile(ctx, "shop", "/admin/")
		require.NoError(t, err)
		require.True(t, res.HasUser)
		require.Nil(t, res.User)
		require.Error(t, res.UserErr)
		require.False(t, res.IsOnAdminRoute)
	})

	t.Run("invalid profile", func(t *testing.T) {
		_, err := svc.InspectProfile(ctx, "../etc", "/")
		require.ErrorIs(t, err, store.ErrInvalidProfile)
		require.True(t, IsClientError(err))
	})
}

func TestSessionService_InspectClient(t *testing.T) {
	svc := &SessionService{Store: memory.NewStore()}

	res, err := svc.InspectClient(context.Background(),
		inspect.MapStorage{"token": "abc"},
		inspect.StaticPath("/admin"),
	)
	require.NoError(t, err)
	require.True(t, res.HasToken)
	require.True(t, res.IsOnAdminRoute)

	_, err = svc.InspectClient(context.Background(), nil, inspect.StaticPath("/"))
	require.ErrorIs(t, err, inspect.ErrUnavailable)
}

func TestSessionService_Items(t *testing.T) {
	ctx := context.Background()
	svc := &SessionService{Store: memory.NewStore()}

	require.NoError(t, svc.SetItem(ctx, "shop", "b", "2"))
	require.NoError(t, svc.SetItem(ctx, "shop", "a", "1"))

	items, err := svc.ListItems(ctx, "shop")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Key)

	item, err := svc.GetItem(ctx, "shop", "b")
	require.NoError(t, err)
	require.Equal(t, "2", item.Value)

	require.NoError(t, svc.RemoveItem(ctx, "shop", "b"))
	require.ErrorIs(t, svc.RemoveItem(ctx, "shop", "b"), store.ErrNotFound)
	require.False(t, IsClientError(store.ErrNotFound))

	n, err := svc.ClearProfile(ctx, "shop")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
