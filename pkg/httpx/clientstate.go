package httpx

import (
	"net/http"
	"net/url"
)

// ClientPathHeader lets a browser report the path it is currently on.
const ClientPathHeader = "X-Client-Path"

// CookieStorage exposes the cookies of a request as read-only client storage.
// Values are percent-decoded when they decode cleanly, since browsers commonly
// encode JSON with encodeURIComponent before putting it in a cookie. A literal
// '+' is kept as is: base64 tokens and phone numbers carry it unencoded.
type CookieStorage struct {
	r *http.Request
}

func NewCookieStorage(r *http.Request) CookieStorage {
	return CookieStorage{r: r}
}

func (c CookieStorage) GetItem(key string) (string, bool) {
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}

	if v, err := url.PathUnescape(cookie.Value); err == nil {
		return v, true
	}
	return cookie.Value, true
}

// ClientPath reports the navigation path of the calling browser. In order it
// tries the X-Client-Path header, the "path" query parameter and the path of
// the Referer. It returns "" when none is present.
func ClientPath(r *http.Request) string {
	if p := r.Header.Get(ClientPathHeader); p != "" {
		return p
	}

	if p := r.URL.Query().Get("path"); p != "" {
		return p
	}

	if ref := r.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil {
			return u.Path
		}
	}

	return ""
}
