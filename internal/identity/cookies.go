// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"net/http"

	"github.com/taibuivan/rollbook/internal/platform/constants"
)

// CookieManager writes and clears the session cookie pair.
//
// # Browser Contract
//
// Both cookies are HttpOnly with SameSite=Strict, so scripts never read them
// and cross-site requests never send them. The Secure flag follows the
// environment: on in production, off for plain-HTTP local development.
//
// Clearing uses the exact same attributes as setting; a cleared cookie with
// mismatched Path or SameSite would survive in the browser jar.
type CookieManager struct {
	secure bool
}

// NewCookieManager creates a cookie manager. secure must be true in any
// environment served over TLS.
func NewCookieManager(secure bool) *CookieManager {
	return &CookieManager{secure: secure}
}

// Attach writes the access and refresh cookies onto the response.
func (manager *CookieManager) Attach(writer http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(writer, manager.build(constants.AccessTokenCookieName, accessToken, int(constants.AccessTokenTTL.Seconds())))
	http.SetCookie(writer, manager.build(constants.RefreshTokenCookieName, refreshToken, int(constants.RefreshTokenTTL.Seconds())))
}

// Clear expires both session cookies.
//
// Clearing only affects the browser jar. A token copied out of a cookie and
// replayed through the Authorization header stays valid until it expires;
// there is no server-side revocation list.
func (manager *CookieManager) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, manager.build(constants.AccessTokenCookieName, "", -1))
	http.SetCookie(writer, manager.build(constants.RefreshTokenCookieName, "", -1))
}

func (manager *CookieManager) build(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
