package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

func (m *Middlewares) RateLimiter() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}
