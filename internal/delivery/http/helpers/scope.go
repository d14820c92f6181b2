package helpers

import (
	"net/http"
	"time"

	"simpleevents/internal/domain"
)

// ScopeFunc captures the request scope once per request.
type ScopeFunc func(r *http.Request) domain.RequestScope

// NewScopeFunc returns a ScopeFunc reading the clock through now and using the
// site's location and formats.
func NewScopeFunc(now func() time.Time, loc *time.Location, formats domain.SiteFormats) ScopeFunc {
	return func(r *http.Request) domain.RequestScope {
		return domain.NewRequestScope(now(), loc, formats)
	}
}
