package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	rl "github.com/rogerio-castellano/shopify-products-admin/internal/http/rate_limiter"
	"github.com/rogerio-castellano/shopify-products-admin/internal/view"
)

type contextKey string

const (
	requestIDKey    = contextKey("request_id")
	HeaderRequestID = "X-Request-ID"

	// HeaderRetryInvalidSession tells App Bridge to fetch a fresh session
	// token and retry.
	HeaderRetryInvalidSession = "X-Shopify-Retry-Invalid-Session-Request"
)

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, rid)
		ctx := context.WithValue(r.Context(), requestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(r *http.Request) string {
	if val, ok := r.Context().Value(requestIDKey).(string); ok {
		return val
	}
	return ""
}

func Logger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			} else if status >= 400 {
				level = slog.LevelWarn
			}

			l.LogAttrs(r.Context(), level, "http_request",
				slog.String("request_id", GetRequestID(r)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
				slog.String("client_ip", clientIP(r)),
			)
		})
	}
}

func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					l.LogAttrs(r.Context(), slog.LevelError, "panic_recovered",
						slog.String("request_id", GetRequestID(r)),
						slog.String("panic", fmt.Sprint(rec)),
						slog.String("stack", string(debug.Stack())),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func RateLimit(limiter *rl.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession authenticates the request and stores the shop session in
// its context. Requests that came with a bearer token get a 401 App Bridge
// can retry. Document loads for an installed shop bounce through App Bridge
// for a fresh session token; other shops are sent through OAuth.
func RequireSession(a auth.Authenticator, apiKey string, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := a.Authenticate(r)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
				return
			}

			var challenge *auth.ChallengeError
			if !errors.As(err, &challenge) {
				l.ErrorContext(r.Context(), "authentication failed", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			l.DebugContext(r.Context(), "authentication challenge",
				slog.String("shop", challenge.Shop),
				slog.Bool("installed", challenge.Installed),
				slog.Any("reason", challenge.Err),
			)
			switch {
			case challenge.Bearer:
				w.Header().Set(HeaderRetryInvalidSession, "1")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case challenge.Installed:
				if err := view.RenderSessionBounce(w, apiKey); err != nil {
					l.ErrorContext(r.Context(), "failed to render session bounce", slog.Any("error", err))
				}
			case challenge.Shop != "":
				target := "/auth?shop=" + url.QueryEscape(challenge.Shop)
				if r.URL.Query().Get("embedded") != "1" {
					http.Redirect(w, r, target, http.StatusFound)
					return
				}
				if err := view.RenderExitIframe(w, apiKey, target); err != nil {
					l.ErrorContext(r.Context(), "failed to render exit iframe", slog.Any("error", err))
				}
			default:
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
