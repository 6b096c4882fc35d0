package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// DefaultRadiusKM is the proximity radius applied when the caller supplies
// coordinates without a radius.
const DefaultRadiusKM = 5.0

// GeoFilter is a proximity filter around a center point. The match is a
// bounding box, not a circle: 1 degree of latitude is taken as 111 km and
// the longitude span is corrected by the cosine of the center latitude.
// Antimeridian and pole wraparound are not handled. Consumers depend on
// exactly which reports the box admits, so this must not be replaced with
// a great-circle distance.
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

type GeoBounds struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

func (g GeoFilter) Bounds() GeoBounds {
	latRange := g.RadiusKM / 111.0
	lngRange := g.RadiusKM / (111.0 * math.Cos(g.Latitude*math.Pi/180))
	return GeoBounds{
		LatMin: g.Latitude - latRange,
		LatMax: g.Latitude + latRange,
		LngMin: g.Longitude - lngRange,
		LngMax: g.Longitude + lngRange,
	}
}

func (b GeoBounds) Contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lng >= b.LngMin && lng <= b.LngMax
}

// ReportFilter carries the recognized listing parameters. Nil/empty fields
// are not applied. Geo is only set when both coordinates parsed cleanly;
// a malformed geo parameter drops the whole proximity clause rather than
// failing the request.
type ReportFilter struct {
	Category     *Category
	Status       *Status
	Priority     *Priority
	DepartmentID *uuid.UUID
	Search       string
	Ordering     string
	Geo          *GeoFilter
}

var orderableColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"priority":   "priority",
}

// OrderClause maps the ordering parameter onto a SQL ORDER BY expression.
// A leading '-' means descending. Unknown columns fall back to the default
// of newest first. The id column is always appended as a stable tie-break.
func (f ReportFilter) OrderClause() string {
	field := strings.TrimSpace(f.Ordering)
	desc := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")

	column, ok := orderableColumns[field]
	if !ok {
		return "created_at DESC, id ASC"
	}
	if desc {
		return column + " DESC, id ASC"
	}
	return column + " ASC, id ASC"
}
