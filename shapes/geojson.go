package shapes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrOutOfRange is returned for vertices outside longitude [-180, 180] or
// latitude [-90, 90].
var ErrOutOfRange = errors.New("shapes: vertex out of range")

// LoadGeoJSON reads the polygons of a GeoJSON file. The file may hold a
// FeatureCollection, a single Feature or a bare geometry. Polygon,
// MultiPolygon and GeometryCollection members are kept; points and lines are
// ignored.
func LoadGeoJSON(path string) ([]orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shapes: read %s: %w", path, err)
	}
	polys, err := DecodeGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("shapes: %s: %w", path, err)
	}
	return polys, nil
}

// DecodeGeoJSON extracts the polygons of a GeoJSON document.
func DecodeGeoJSON(data []byte) ([]orb.Polygon, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var geoms []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature collection: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}

	var polys []orb.Polygon
	for _, g := range geoms {
		var err error
		if polys, err = appendPolygons(polys, g); err != nil {
			return nil, err
		}
	}
	return polys, nil
}

func appendPolygons(polys []orb.Polygon, g orb.Geometry) ([]orb.Polygon, error) {
	switch g := g.(type) {
	case orb.Polygon:
		if err := checkPolygon(g); err != nil {
			return nil, err
		}
		return append(polys, g), nil
	case orb.MultiPolygon:
		for _, p := range g {
			if err := checkPolygon(p); err != nil {
				return nil, err
			}
			polys = append(polys, p)
		}
		return polys, nil
	case orb.Collection:
		for _, member := range g {
			var err error
			if polys, err = appendPolygons(polys, member); err != nil {
				return nil, err
			}
		}
		return polys, nil
	}
	return polys, nil
}

func checkPolygon(p orb.Polygon) error {
	for _, ring := range p {
		for _, pt := range ring {
			if pt.Lon() < -180 || pt.Lon() > 180 || pt.Lat() < -90 || pt.Lat() > 90 {
				return fmt.Errorf("%w: (%v, %v)", ErrOutOfRange, pt.Lon(), pt.Lat())
			}
		}
	}
	return nil
}

// EncodeGeoJSON writes polygons as a FeatureCollection with one Feature per
// polygon.
func EncodeGeoJSON(polys []orb.Polygon) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, p := range polys {
		f := geojson.NewFeature(p)
		f.Properties["featurecla"] = "Land"
		fc.Append(f)
	}
	return json.Marshal(fc)
}
