package handler

import (
	"github.com/gorilla/sessions"
)

// NewSessionStore creates a cookie store for browser sessions.
func NewSessionStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: 0, // SameSiteDefaultMode
	}
	return store
}
