package catalogfile

import (
	"testing"

	"github.com/MrSnakeDoc/statuary/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestMapStatues(t *testing.T) {
	doc := &Document{
		Statues: []StatueProps{
			{
				ID:               "venus",
				Name:             "Venus de Milo",
				Artist:           "Alexandros von Antiochia",
				Period:           "Hellenistische Epoche",
				FoundCoordinates: &CoordsProps{Lat: 36.7213, Lng: 24.4259},
				Damages:          []DamageProps{{Part: "Beide Arme", Description: "fehlen"}},
				Kunstepoche:      &NarrativeProps{Title: "Hellenismus", Description: "..."},
			},
			{ID: "plain", Name: "Plain"},
		},
	}

	statues, err := NewMapper().MapStatues(doc)
	if err != nil {
		t.Fatalf("MapStatues() error = %v", err)
	}
	if len(statues) != 2 {
		t.Fatalf("MapStatues() returned %d statues, want 2", len(statues))
	}

	venus := statues[0]
	if venus.FoundCoordinates == nil || venus.FoundCoordinates.Lat != 36.7213 {
		t.Errorf("FoundCoordinates = %+v", venus.FoundCoordinates)
	}
	if !venus.HasDamages() || venus.Damages[0].Part != "Beide Arme" {
		t.Errorf("Damages = %+v", venus.Damages)
	}
	if venus.EpochName() != "Hellenismus" {
		t.Errorf("EpochName() = %q", venus.EpochName())
	}

	plain := statues[1]
	if plain.FoundCoordinates != nil || plain.Model != nil || plain.HasDamages() || plain.Mythologie != nil {
		t.Errorf("optional sections should stay absent: %+v", plain)
	}
}

func TestMapStatuesEmpty(t *testing.T) {
	if _, err := NewMapper().MapStatues(&Document{}); err == nil {
		t.Error("MapStatues() should fail on empty document")
	}
}

func TestMapModelDefaults(t *testing.T) {
	tests := []struct {
		name     string
		props    *ModelProps
		expected *domain.ModelConfig
	}{
		{
			name:     "absent model",
			props:    nil,
			expected: nil,
		},
		{
			name:  "file only gets every default",
			props: &ModelProps{File: "/models/x.glb"},
			expected: &domain.ModelConfig{
				File:     "/models/x.glb",
				Scale:    1,
				Position: domain.Vector3{0, -1.2, 0},
				Rotation: domain.Vector3{0, 0, 0},
				Camera:   domain.CameraConfig{Position: domain.Vector3{0, 1.4, 4.5}, FOV: 40},
				Controls: domain.OrbitControls{MinDistance: 1.5, MaxDistance: 6},
			},
		},
		{
			name: "partial overrides",
			props: &ModelProps{
				File:     "/models/nike.glb",
				Scale:    ptr(1.15),
				Position: &[3]float64{0, -1.3, 0},
				Camera:   &CameraProps{FOV: ptr(38.0)},
				Controls: &ControlProps{MaxDistance: ptr(5.0)},
			},
			expected: &domain.ModelConfig{
				File:     "/models/nike.glb",
				Scale:    1.15,
				Position: domain.Vector3{0, -1.3, 0},
				Rotation: domain.Vector3{0, 0, 0},
				Camera:   domain.CameraConfig{Position: domain.Vector3{0, 1.4, 4.5}, FOV: 38},
				Controls: domain.OrbitControls{MinDistance: 1.5, MaxDistance: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapModel(tt.props)
			if tt.expected == nil {
				if got != nil {
					t.Errorf("mapModel() = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.expected {
				t.Errorf("mapModel() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestEmbeddedCatalogMapsWithDefaults(t *testing.T) {
	doc, err := NewLoader("").Load()
	if err != nil {
		t.Fatal(err)
	}
	statues, err := NewMapper().MapStatues(doc)
	if err != nil {
		t.Fatal(err)
	}

	byID := map[string]*domain.Statue{}
	for _, s := range statues {
		byID[s.ID] = s
	}

	if byID["laocoon"].Model != nil {
		t.Error("laocoon has no model in the catalog")
	}
	david := byID["david"].Model
	if david.Scale != 1.1 || david.Position != (domain.Vector3{0, -1.6, 0}) || david.Camera.FOV != 40 {
		t.Errorf("david model = %+v", david)
	}
	if thinker := byID["thinker"].Model; thinker.Controls.MinDistance != 1.2 || thinker.Controls.MaxDistance != 5 {
		t.Errorf("thinker controls = %+v", thinker.Controls)
	}
	if nike := byID["winged-victory"].Model; nike.Camera.Position != (domain.Vector3{0, 1.2, 5}) || nike.Camera.FOV != 38 {
		t.Errorf("winged-victory camera = %+v", nike.Camera)
	}

	presets := NewMapper().MapPresets(doc)
	if presets[5].Label != "Laocoön" || presets[5].Value != "laocoon" {
		t.Errorf("last preset = %+v", presets[5])
	}
}
