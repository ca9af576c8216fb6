// Package cookie bridges a per-request cookie map to the HTTP response.
//
// A Store holds cookie values and notifies listeners on every Set or Remove.
// Bridge primes a Store from the incoming request and registers a listener
// that appends a Set-Cookie header for each mutation while the response
// headers are still unsent. Mutations after the headers have gone out update
// the store only; they are not an error.
//
// # Usage
//
//	mux.Handle("/", cookie.Middleware(cookie.WithSecure(true))(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    store, _ := cookie.FromContext(r.Context())
//	    lang, _ := store.Get("lang")
//	    _ = store.Set("lang", "de", cookie.WithMaxAge(86400))
//	}
//
// NewJarStore is the client-side counterpart: a Store over an http.CookieJar,
// shared with the http.Client that talks to the backend.
//
// Removals are serialized as "name=" with no attributes.
package cookie
