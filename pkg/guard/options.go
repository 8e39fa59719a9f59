package guard

import "net/http"

// options holds the guard placeholders.
type options struct {
	loading http.Handler
	denied  http.Handler
}

func defaultOptions() *options {
	return &options{
		loading: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "session loading", http.StatusServiceUnavailable)
		}),
		denied: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}),
	}
}

// Option configures a guard.
type Option func(*options)

// WithLoadingHandler sets the handler served while the session is loading.
func WithLoadingHandler(h http.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.loading = h
		}
	}
}

// WithDeniedHandler sets the handler served when the gating predicate
// fails.
func WithDeniedHandler(h http.Handler) Option {
	return func(o *options) {
		if h != nil {
			o.denied = h
		}
	}
}

// RedirectToLogin is a convenience denied handler sending the client to
// the hosted login page.
func RedirectToLogin(loginURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, loginURL, http.StatusFound)
	})
}
