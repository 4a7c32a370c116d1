package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"ascii-earth/globe"
)

const markerGlyph = 'O'

// ErrNeedGeoIP is returned for an IP marker when no GeoIP database is open.
var ErrNeedGeoIP = errors.New("IP marker needs a GeoIP database (-geoip)")

// cityLookup is the part of *geoip2.Reader used to place IP markers.
type cityLookup interface {
	City(ip net.IP) (*geoip2.City, error)
}

// parseMarkers parses every marker spec. db may be nil when no spec is an IP
// address.
func parseMarkers(specs []string, db cityLookup) ([]globe.Marker, error) {
	markers := make([]globe.Marker, 0, len(specs))
	for _, spec := range specs {
		m, err := parseMarker(spec, db)
		if err != nil {
			return nil, fmt.Errorf("marker %q: %w", spec, err)
		}
		markers = append(markers, m)
	}
	return markers, nil
}

// parseMarker accepts "lat,lon" in degrees or an IPv4/IPv6 address.
func parseMarker(spec string, db cityLookup) (globe.Marker, error) {
	spec = strings.TrimSpace(spec)
	if latStr, lonStr, ok := strings.Cut(spec, ","); ok {
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return globe.Marker{}, fmt.Errorf("latitude: %w", err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return globe.Marker{}, fmt.Errorf("longitude: %w", err)
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return globe.Marker{}, fmt.Errorf("position (%v, %v) out of range", lat, lon)
		}
		return globe.Marker{Lat: lat, Lon: lon, Glyph: markerGlyph}, nil
	}

	ip := net.ParseIP(spec)
	if ip == nil {
		return globe.Marker{}, errors.New("want lat,lon or an IP address")
	}
	if db == nil {
		return globe.Marker{}, ErrNeedGeoIP
	}
	rec, err := db.City(ip)
	if err != nil {
		return globe.Marker{}, fmt.Errorf("geoip lookup: %w", err)
	}
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return globe.Marker{}, fmt.Errorf("no location for %s", ip)
	}
	return globe.Marker{Lat: rec.Location.Latitude, Lon: rec.Location.Longitude, Glyph: markerGlyph}, nil
}
