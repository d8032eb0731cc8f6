package domain

import "strconv"

// Vector3 is an (x, y, z) triple used by the 3D viewer.
type Vector3 [3]float64

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Damage describes one missing or broken part of a statue.
type Damage struct {
	Part        string `json:"part"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CameraConfig positions the viewer camera.
type CameraConfig struct {
	Position Vector3 `json:"position"`
	FOV      float64 `json:"fov"`
}

// OrbitControls bounds the orbit distance of the viewer.
type OrbitControls struct {
	MinDistance float64 `json:"minDistance"`
	MaxDistance float64 `json:"maxDistance"`
}

// ModelConfig references an external 3D asset and its transform overrides.
// The asset itself is never read or validated here.
type ModelConfig struct {
	File     string        `json:"file"`
	Scale    float64       `json:"scale"`
	Position Vector3       `json:"position"`
	Rotation Vector3       `json:"rotation"`
	Camera   CameraConfig  `json:"camera"`
	Controls OrbitControls `json:"controls"`
}

// Narrative is an optional story section (mythology, art epoch).
type Narrative struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

// Statue is the canonical, immutable catalog record of an exhibit.
//
// Optional parts are pointers or slices; nil means "absent" and every
// consumer treats it as a zero contribution or an empty section.
type Statue struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the lowercase slug used as catalog key.
	// Example: winged-victory
	ID string `json:"id"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Material    string `json:"material,omitempty"`
	Period      string `json:"period"`
	Year        string `json:"year"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// FoundLocation is the free-text discovery place.
	FoundLocation string `json:"foundLocation"`

	// FoundCoordinates is nil when the discovery place is unknown.
	// Distance scoring and the map link are skipped in that case.
	FoundCoordinates *Coordinates `json:"foundCoordinates,omitempty"`

	// ─────────────────────────────
	// Optional sections
	// ─────────────────────────────

	// Damages is empty for undamaged statues.
	Damages []Damage `json:"damages,omitempty"`

	// Model is nil when there is no renderable asset.
	Model *ModelConfig `json:"model,omitempty"`

	Mythologie  *Narrative `json:"mythologie,omitempty"`
	Kunstepoche *Narrative `json:"kunstepoche,omitempty"`
}

// HasDamages reports whether the statue has at least one recorded damage.
func (s *Statue) HasDamages() bool {
	return s != nil && len(s.Damages) > 0
}

// EpochName is the display name of the statue's epoch.
func (s *Statue) EpochName() string {
	if s.Kunstepoche != nil && s.Kunstepoche.Title != "" {
		return s.Kunstepoche.Title
	}
	return s.Period
}

// Creator returns the artist, falling back to the material line used by
// catalogs that do not attribute their pieces.
func (s *Statue) Creator() string {
	if s.Artist != "" {
		return s.Artist
	}
	if s.Material != "" {
		return s.Material
	}
	return "Unbekannt"
}

const mapSearchURL = "https://www.google.com/maps/search/"

// MapURL links the discovery coordinates to a map search. It reports
// false when the statue has no coordinates.
func (s *Statue) MapURL() (string, bool) {
	if s == nil || s.FoundCoordinates == nil {
		return "", false
	}
	c := s.FoundCoordinates
	return mapSearchURL + "?api=1&query=" + formatCoord(c.Lat) + "," + formatCoord(c.Lng), true
}

func formatCoord(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
