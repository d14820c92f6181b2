package main

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleevents/config"
	"simpleevents/internal/adapters/render"
	"simpleevents/internal/domain"
)

func TestNewFeed_EventURL(t *testing.T) {
	event := &domain.Event{
		ID: "0b6f3c1e-5d7a-4c0e-9a51-2f1d8e7b6a43", Title: "Harvest supper",
		DateTime: "2024-09-21 18:00", Duration: 2, Visibility: domain.VisibilityPublic,
	}

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"relative", "", "/events/0b6f3c1e-5d7a-4c0e-9a51-2f1d8e7b6a43"},
		{"absolute", "https://events.example.org/", "https://events.example.org/events/0b6f3c1e-5d7a-4c0e-9a51-2f1d8e7b6a43"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := &config.SiteSettings{BaseURL: tt.baseURL}
			require.NoError(t, site.Normalize())
			feed := newFeed(site)
			require.NotNil(t, feed.EventURL)
			assert.Equal(t, config.DefaultSiteName, feed.Name)

			var buf bytes.Buffer
			_, err := feed.Write(&buf, []*domain.Event{event}, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			cal, err := ical.ParseCalendar(&buf)
			require.NoError(t, err)
			require.Len(t, cal.Events(), 1)
			assert.Equal(t, tt.want, cal.Events()[0].GetProperty(ical.ComponentPropertyUrl).Value)
		})
	}
}

func TestNewFeed_MatchesRendererLinks(t *testing.T) {
	site := config.DefaultSite()
	event := &domain.Event{ID: "0b6f3c1e-5d7a-4c0e-9a51-2f1d8e7b6a43", Title: "Harvest supper"}

	html, err := render.NewRenderer(eventPath).Event(event, nil)
	require.NoError(t, err)
	assert.Contains(t, html, `href="`+newFeed(site).EventURL(event)+`"`)
}
