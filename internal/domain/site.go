package domain

import "time"

// SiteFormats supplies the site-wide display layouts (Go reference-time layouts).
type SiteFormats interface {
	DateFormat() string
	TimeFormat() string
}

// RequestScope carries the per-request ambient values the core needs.
// Now is captured once and reused for every comparison within the request.
type RequestScope struct {
	Now      time.Time
	Location *time.Location
	Formats  SiteFormats
}

// NewRequestScope captures now in loc, truncated to the minute.
func NewRequestScope(now time.Time, loc *time.Location, formats SiteFormats) RequestScope {
	if loc == nil {
		loc = time.UTC
	}
	return RequestScope{
		Now:      now.In(loc).Truncate(time.Minute),
		Location: loc,
		Formats:  formats,
	}
}

// NowString formats Now in DateTimeLayout; seconds are never compared.
func (s RequestScope) NowString() string {
	return s.Now.Format(DateTimeLayout)
}
