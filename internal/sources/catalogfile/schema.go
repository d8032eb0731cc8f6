package catalogfile

// Document is the top-level structure of a catalog YAML file.
type Document struct {
	Statues []StatueProps `yaml:"statues" validate:"required,min=1,dive"`
	Presets []PresetProps `yaml:"presets" validate:"dive"`
}

// StatueProps is one statue record as written in the file.
type StatueProps struct {
	ID               string          `yaml:"id" validate:"required,lowercase"`
	Name             string          `yaml:"name" validate:"required"`
	Artist           string          `yaml:"artist,omitempty"`
	Material         string          `yaml:"material,omitempty"`
	Period           string          `yaml:"period"`
	Year             string          `yaml:"year"`
	Location         string          `yaml:"location"`
	Description      string          `yaml:"description"`
	ImageURL         string          `yaml:"imageUrl,omitempty" validate:"omitempty,url"`
	FoundLocation    string          `yaml:"foundLocation"`
	FoundCoordinates *CoordsProps    `yaml:"foundCoordinates,omitempty"`
	Damages          []DamageProps   `yaml:"damages,omitempty" validate:"dive"`
	Model            *ModelProps     `yaml:"model,omitempty"`
	Mythologie       *NarrativeProps `yaml:"mythologie,omitempty"`
	Kunstepoche      *NarrativeProps `yaml:"kunstepoche,omitempty"`
}

type CoordsProps struct {
	Lat float64 `yaml:"lat" validate:"latitude"`
	Lng float64 `yaml:"lng" validate:"longitude"`
}

type DamageProps struct {
	Part        string `yaml:"part" validate:"required"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl,omitempty"`
}

// ModelProps holds the asset path and optional transform overrides.
// Absent overrides get defaults in the mapper.
type ModelProps struct {
	File     string        `yaml:"file" validate:"required"`
	Scale    *float64      `yaml:"scale,omitempty" validate:"omitempty,gt=0"`
	Position *[3]float64   `yaml:"position,omitempty"`
	Rotation *[3]float64   `yaml:"rotation,omitempty"`
	Camera   *CameraProps  `yaml:"camera,omitempty"`
	Controls *ControlProps `yaml:"controls,omitempty"`
}

type CameraProps struct {
	Position *[3]float64 `yaml:"position,omitempty"`
	FOV      *float64    `yaml:"fov,omitempty" validate:"omitempty,gt=0,lt=180"`
}

type ControlProps struct {
	MinDistance *float64 `yaml:"minDistance,omitempty" validate:"omitempty,gte=0"`
	MaxDistance *float64 `yaml:"maxDistance,omitempty" validate:"omitempty,gte=0"`
}

type NarrativeProps struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description"`
	Images      []string `yaml:"images,omitempty"`
}

// PresetProps is a quick-scan button.
type PresetProps struct {
	Label string `yaml:"label" validate:"required"`
	Value string `yaml:"value" validate:"required"`
}
