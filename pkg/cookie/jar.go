package cookie

import (
	"net/http"
	"net/url"
)

// NewJarStore returns a store backed by jar for u. It is primed with the
// cookies the jar holds for u and writes every mutation back to the jar, so
// an http.Client sharing the jar sends them on later requests.
func NewJarStore(jar http.CookieJar, u *url.URL, opts ...Option) (*Store, error) {
	if jar == nil || u == nil {
		return nil, ErrNilJar
	}

	store := NewStore(jar.Cookies(u), opts...)
	store.AddChangeListener(func(c Change) {
		jar.SetCookies(u, []*http.Cookie{c.Cookie()})
	})
	return store, nil
}
