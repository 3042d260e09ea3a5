package domain

import (
	"math"
	"strings"
)

// MilesPerDegree converts great-circle degrees into miles.
const MilesPerDegree = 69.09

// Coordinate is a latitude/longitude pair in degrees. The zero value is the
// "location unknown" sentinel.
type Coordinate struct {
	Lat, Long float64
}

// IsSentinel reports whether c is the (0,0) placeholder for an unknown location.
func (c Coordinate) IsSentinel() bool {
	return c.Lat == 0 && c.Long == 0
}

// SphericalDistance returns the great-circle distance in miles between a and b using
// the spherical law of cosines. The arccos argument is clamped to [-1, 1].
func SphericalDistance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	latA, latB := a.Lat*math.Pi/180, b.Lat*math.Pi/180
	dLong := (b.Long - a.Long) * math.Pi / 180

	cosAngle := math.Sin(latA)*math.Sin(latB) + math.Cos(latA)*math.Cos(latB)*math.Cos(dLong)
	cosAngle = max(-1, min(1, cosAngle))

	return math.Acos(cosAngle) * 180 / math.Pi * MilesPerDegree
}

type cityKey struct {
	city, state string
}

func newCityKey(city, state string) cityKey {
	return cityKey{
		city:  strings.ToLower(strings.TrimSpace(city)),
		state: strings.ToLower(strings.TrimSpace(state)),
	}
}

// GeoLookup resolves postal codes and (city, region) pairs to coordinates.
type GeoLookup struct {
	zips   map[int]Coordinate
	cities map[cityKey]Coordinate
}

// GeoRecord is one row of the geocoordinate table.
type GeoRecord struct {
	Zip   int
	State string
	City  string
	Coordinate
}

// NewGeoLookup indexes records by zip and by (city, state). When several zips share a
// city, the first record wins.
func NewGeoLookup(records []GeoRecord) GeoLookup {
	g := GeoLookup{
		zips:   make(map[int]Coordinate, len(records)),
		cities: make(map[cityKey]Coordinate),
	}
	for _, r := range records {
		g.zips[r.Zip] = r.Coordinate
		key := newCityKey(r.City, r.State)
		if _, ok := g.cities[key]; !ok {
			g.cities[key] = r.Coordinate
		}
	}
	return g
}

func (g GeoLookup) ByZip(zip int) (Coordinate, bool) {
	c, ok := g.zips[zip]
	return c, ok
}

func (g GeoLookup) ByCity(city, state string) (Coordinate, bool) {
	c, ok := g.cities[newCityKey(city, state)]
	return c, ok
}

// Resolve tries the location's postal code first, then its (city, state).
func (g GeoLookup) Resolve(loc Location) (Coordinate, bool) {
	if loc.Zip != nil {
		if c, ok := g.ByZip(*loc.Zip); ok {
			return c, true
		}
	}
	return g.ByCity(loc.City, loc.State)
}

// ZipDistance returns the distance in miles between two postal codes.
func (g GeoLookup) ZipDistance(a, b int) (float64, bool) {
	if a == b {
		return 0, true
	}
	ca, ok := g.ByZip(a)
	if !ok {
		return 0, false
	}
	cb, ok := g.ByZip(b)
	if !ok {
		return 0, false
	}
	return SphericalDistance(ca, cb), true
}
