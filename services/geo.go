package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Geo queries the map endpoints: proximity searches and geocoding. The
// server proxies the map provider so clients never talk to it directly.
type Geo struct {
	rest *transport.Client
}

func NewGeo(rest *transport.Client) *Geo {
	return &Geo{rest: rest}
}

// EventsNearby returns events within radiusKm of the given coordinates.
func (s *Geo) EventsNearby(ctx context.Context, lat, lon, radiusKm float64) ([]core.Event, error) {
	var events []core.Event
	if err := s.rest.Get(ctx, "/api/map/events/nearby?"+nearbyQuery(lat, lon, radiusKm), &events); err != nil {
		return nil, fmt.Errorf("failed to load nearby events: %w", err)
	}
	return events, nil
}

// OutingsNearby returns outings within radiusKm of the given coordinates.
func (s *Geo) OutingsNearby(ctx context.Context, lat, lon, radiusKm float64) ([]core.Outing, error) {
	var outings []core.Outing
	if err := s.rest.Get(ctx, "/api/map/outings/nearby?"+nearbyQuery(lat, lon, radiusKm), &outings); err != nil {
		return nil, fmt.Errorf("failed to load nearby outings: %w", err)
	}
	return outings, nil
}

// Geocode resolves a free-text address to location suggestions.
func (s *Geo) Geocode(ctx context.Context, query string) ([]core.LocationSuggestion, error) {
	var suggestions []core.LocationSuggestion
	path := "/api/map/geocode?query=" + url.QueryEscape(query)
	if err := s.rest.Get(ctx, path, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", query, err)
	}
	return suggestions, nil
}

// ReverseGeocode resolves coordinates to a display address.
func (s *Geo) ReverseGeocode(ctx context.Context, lat, lon float64) (*core.LocationSuggestion, error) {
	var suggestion core.LocationSuggestion
	query := url.Values{}
	query.Set("lat", formatCoord(lat))
	query.Set("lon", formatCoord(lon))
	if err := s.rest.Get(ctx, "/api/map/reverse-geocode?"+query.Encode(), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to reverse-geocode: %w", err)
	}
	return &suggestion, nil
}

func nearbyQuery(lat, lon, radiusKm float64) string {
	query := url.Values{}
	query.Set("lat", formatCoord(lat))
	query.Set("lon", formatCoord(lon))
	query.Set("radius", formatCoord(radiusKm))
	return query.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
