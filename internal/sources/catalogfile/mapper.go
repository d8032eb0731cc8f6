package catalogfile

import (
	"fmt"

	"github.com/MrSnakeDoc/statuary/internal/domain"
)

// Model defaults used when a statue references an asset but leaves an
// override out.
var (
	DefaultScale       = 1.0
	DefaultPosition    = domain.Vector3{0, -1.2, 0}
	DefaultRotation    = domain.Vector3{0, 0, 0}
	DefaultCameraPos   = domain.Vector3{0, 1.4, 4.5}
	DefaultFOV         = 40.0
	DefaultMinDistance = 1.5
	DefaultMaxDistance = 6.0
)

// Preset is a quick-scan button shown next to the manual code input.
type Preset struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Mapper converts catalog documents to domain statues
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapStatues converts every record, in document order.
func (m *Mapper) MapStatues(doc *Document) ([]*domain.Statue, error) {
	if doc == nil || len(doc.Statues) == 0 {
		return nil, fmt.Errorf("no statues found in catalog")
	}

	statues := make([]*domain.Statue, 0, len(doc.Statues))
	for _, p := range doc.Statues {
		statues = append(statues, m.mapStatue(p))
	}
	return statues, nil
}

// MapPresets converts the quick-scan buttons.
func (m *Mapper) MapPresets(doc *Document) []Preset {
	presets := make([]Preset, 0, len(doc.Presets))
	for _, p := range doc.Presets {
		presets = append(presets, Preset(p))
	}
	return presets
}

func (m *Mapper) mapStatue(p StatueProps) *domain.Statue {
	s := &domain.Statue{
		ID:            p.ID,
		Name:          p.Name,
		Artist:        p.Artist,
		Material:      p.Material,
		Period:        p.Period,
		Year:          p.Year,
		Location:      p.Location,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		FoundLocation: p.FoundLocation,
		Model:         mapModel(p.Model),
		Mythologie:    mapNarrative(p.Mythologie),
		Kunstepoche:   mapNarrative(p.Kunstepoche),
	}

	if p.FoundCoordinates != nil {
		s.FoundCoordinates = &domain.Coordinates{Lat: p.FoundCoordinates.Lat, Lng: p.FoundCoordinates.Lng}
	}

	for _, d := range p.Damages {
		s.Damages = append(s.Damages, domain.Damage(d))
	}

	return s
}

func mapModel(p *ModelProps) *domain.ModelConfig {
	if p == nil {
		return nil
	}

	m := &domain.ModelConfig{
		File:     p.File,
		Scale:    orDefault(p.Scale, DefaultScale),
		Position: vecOrDefault(p.Position, DefaultPosition),
		Rotation: vecOrDefault(p.Rotation, DefaultRotation),
		Camera: domain.CameraConfig{
			Position: DefaultCameraPos,
			FOV:      DefaultFOV,
		},
		Controls: domain.OrbitControls{
			MinDistance: DefaultMinDistance,
			MaxDistance: DefaultMaxDistance,
		},
	}

	if p.Camera != nil {
		m.Camera.Position = vecOrDefault(p.Camera.Position, DefaultCameraPos)
		m.Camera.FOV = orDefault(p.Camera.FOV, DefaultFOV)
	}
	if p.Controls != nil {
		m.Controls.MinDistance = orDefault(p.Controls.MinDistance, DefaultMinDistance)
		m.Controls.MaxDistance = orDefault(p.Controls.MaxDistance, DefaultMaxDistance)
	}

	return m
}

func mapNarrative(p *NarrativeProps) *domain.Narrative {
	if p == nil {
		return nil
	}
	return &domain.Narrative{Title: p.Title, Description: p.Description, Images: p.Images}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func vecOrDefault(v *[3]float64, def domain.Vector3) domain.Vector3 {
	if v == nil {
		return def
	}
	return domain.Vector3(*v)
}
