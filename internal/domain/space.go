package domain

type SpaceStatus string

const (
	SpaceStatusFree SpaceStatus = "FREE"
	SpaceStatusBusy SpaceStatus = "BUSY"
)

type SpaceCategory string

const (
	SpaceCategoryStandard   SpaceCategory = "STANDARD"
	SpaceCategoryAccessible SpaceCategory = "ACCESSIBLE"
)

// Space is a single parking slot identified by a number within a zone.
// Invariant: Status is BUSY iff a confirmed, non-ended reservation
// references the space (OccupiedBy carries that reservation's id).
type Space struct {
	ID         int32         `json:"id"`
	Number     string        `json:"number"`
	ZoneID     int32         `json:"zone_id"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	Category   SpaceCategory `json:"category"`
	Status     SpaceStatus   `json:"status"`
	OccupiedBy *string       `json:"occupied_by,omitempty"`
	// PriceCentsPerHour overrides the zone default when nonzero.
	PriceCentsPerHour int32 `json:"price_cents_per_hour"`
}

// Zone is a named geographic grouping of spaces sharing a default hourly
// price. Read-only from the reservation core's perspective.
type Zone struct {
	ID                int32      `json:"id"`
	Name              string     `json:"name"`
	PriceCentsPerHour int32      `json:"price_cents_per_hour"`
	Boundary          []GeoPoint `json:"boundary,omitempty"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
