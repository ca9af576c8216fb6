package cookie

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// Bridge returns a store primed from the request cookies and a ResponseWriter
// that must be used for the rest of the request. Mutations of the store are
// written as Set-Cookie headers until the response headers are sent; later
// mutations only update the store.
func Bridge(w http.ResponseWriter, r *http.Request, opts ...Option) (*Store, http.ResponseWriter) {
	rw := &responseWriter{ResponseWriter: w}
	store := NewStore(r.Cookies(), opts...)
	store.AddChangeListener(rw.setCookie)
	return store, rw
}

type responseWriter struct {
	http.ResponseWriter

	mu   sync.Mutex
	sent bool
}

func (w *responseWriter) setCookie(c Change) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sent {
		return
	}
	w.ResponseWriter.Header().Add("Set-Cookie", c.Header())
}

func (w *responseWriter) markSent() {
	w.mu.Lock()
	w.sent = true
	w.mu.Unlock()
}

// HeadersSent reports whether the response headers have been written.
func (w *responseWriter) HeadersSent() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sent
}

func (w *responseWriter) WriteHeader(code int) {
	w.markSent()
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.markSent()
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Flush() {
	w.markSent()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	w.markSent()
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
