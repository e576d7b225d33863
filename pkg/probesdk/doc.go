/*
Package probesdk is a client for the sessionprobe service.

Seed a profile the way a storefront's auth flow would leave it, then inspect it:

	client := probesdk.NewClient("http://localhost:8080")

	_ = client.SetItem(ctx, "checkout", "token", token)
	_ = client.SetItem(ctx, "checkout", "user", `{"role":"admin"}`)

	res, err := client.InspectProfile(ctx, "checkout", "/admin")
	// res.HasToken, res.HasUser, res.User, res.IsOnAdminRoute

A malformed stored user record comes back as res.User == nil with HasUser
still true; it is never returned as an error. Non-2xx responses are returned
as *APIError.
*/
package probesdk
