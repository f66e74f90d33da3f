package filmicio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/rawtone/filmicrgb/pkg/filmic"
)

// Preset is the human-editable on-disk form of filmic.Params, laid
// out as a plain YAML mapping the way the teacher's Config is, rather
// than the binary version-tagged schema filmic.MigrateV1ToV2 actually
// migrates. A host loads a Preset, converts it with ToParams, and
// hands the result to filmic.CommitParams.
type Preset struct {
	Name string `yaml:"name"`

	GreyPointSource  float32 `yaml:"grey_point_source"`
	BlackPointSource float32 `yaml:"black_point_source"`
	WhitePointSource float32 `yaml:"white_point_source"`
	SecurityFactor   float32 `yaml:"security_factor"`

	GreyPointTarget  float32 `yaml:"grey_point_target"`
	BlackPointTarget float32 `yaml:"black_point_target"`
	WhitePointTarget float32 `yaml:"white_point_target"`
	OutputPower      float32 `yaml:"output_power"`

	Latitude   float32 `yaml:"latitude"`
	Contrast   float32 `yaml:"contrast"`
	Balance    float32 `yaml:"balance"`
	Saturation float32 `yaml:"saturation"`

	ReconstructThreshold          float32 `yaml:"reconstruct_threshold"`
	ReconstructFeather            float32 `yaml:"reconstruct_feather"`
	ReconstructBloomVsDetails     float32 `yaml:"reconstruct_bloom_vs_details"`
	ReconstructGreyVsColor        float32 `yaml:"reconstruct_grey_vs_color"`
	ReconstructStructureVsTexture float32 `yaml:"reconstruct_structure_vs_texture"`
	HighQualityReconstruction     bool    `yaml:"high_quality_reconstruction"`

	PreserveColor string `yaml:"preserve_color"` // none|max-rgb|luminance|power-norm
	Version       string `yaml:"version"`        // v1|v2
	Shadows       string `yaml:"shadows"`        // poly4|poly3
	Highlights    string `yaml:"highlights"`     // poly4|poly3

	AutoHardness bool `yaml:"auto_hardness"`
	CustomGrey   bool `yaml:"custom_grey"`
}

// FromParams converts filmic.Params into its YAML-editable form.
func FromParams(name string, p filmic.Params) Preset {
	return Preset{
		Name: name,

		GreyPointSource:  p.GreyPointSource,
		BlackPointSource: p.BlackPointSource,
		WhitePointSource: p.WhitePointSource,
		SecurityFactor:   p.SecurityFactor,

		GreyPointTarget:  p.GreyPointTarget,
		BlackPointTarget: p.BlackPointTarget,
		WhitePointTarget: p.WhitePointTarget,
		OutputPower:      p.OutputPower,

		Latitude:   p.Latitude,
		Contrast:   p.Contrast,
		Balance:    p.Balance,
		Saturation: p.Saturation,

		ReconstructThreshold:          p.ReconstructThreshold,
		ReconstructFeather:            p.ReconstructFeather,
		ReconstructBloomVsDetails:     p.ReconstructBloomVsDetails,
		ReconstructGreyVsColor:        p.ReconstructGreyVsColor,
		ReconstructStructureVsTexture: p.ReconstructStructureVsTexture,
		HighQualityReconstruction:     p.HighQualityReconstruction,

		PreserveColor: preserveColorName(p.PreserveColor),
		Version:       versionName(p.Version),
		Shadows:       curveTypeName(p.Shadows),
		Highlights:    curveTypeName(p.Highlights),

		AutoHardness: p.AutoHardness,
		CustomGrey:   p.CustomGrey,
	}
}

// ToParams converts a Preset back into filmic.Params, defaulting any
// discrete field whose YAML value doesn't match a known name rather
// than failing the whole load.
func (pr Preset) ToParams() filmic.Params {
	return filmic.Params{
		GreyPointSource:  pr.GreyPointSource,
		BlackPointSource: pr.BlackPointSource,
		WhitePointSource: pr.WhitePointSource,
		SecurityFactor:   pr.SecurityFactor,

		GreyPointTarget:  pr.GreyPointTarget,
		BlackPointTarget: pr.BlackPointTarget,
		WhitePointTarget: pr.WhitePointTarget,
		OutputPower:      pr.OutputPower,

		Latitude:   pr.Latitude,
		Contrast:   pr.Contrast,
		Balance:    pr.Balance,
		Saturation: pr.Saturation,

		ReconstructThreshold:          pr.ReconstructThreshold,
		ReconstructFeather:            pr.ReconstructFeather,
		ReconstructBloomVsDetails:     pr.ReconstructBloomVsDetails,
		ReconstructGreyVsColor:        pr.ReconstructGreyVsColor,
		ReconstructStructureVsTexture: pr.ReconstructStructureVsTexture,
		HighQualityReconstruction:     pr.HighQualityReconstruction,

		PreserveColor: parsePreserveColor(pr.PreserveColor),
		Version:       parseVersion(pr.Version),
		Shadows:       parseCurveType(pr.Shadows),
		Highlights:    parseCurveType(pr.Highlights),

		AutoHardness: pr.AutoHardness,
		CustomGrey:   pr.CustomGrey,
	}
}

func LoadPresetFile(path string) (Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("filmicio: read preset %q: %w", path, err)
	}
	var pr Preset
	if err := yaml.Unmarshal(b, &pr); err != nil {
		return Preset{}, fmt.Errorf("filmicio: unmarshal preset %q: %w", path, err)
	}
	return pr, nil
}

func (pr Preset) AsYaml() (string, error) {
	b, err := yaml.Marshal(pr)
	if err != nil {
		return "", fmt.Errorf("filmicio: marshal preset: %w", err)
	}
	return string(b), nil
}

func preserveColorName(v filmic.PreserveColor) string { return v.String() }
func versionName(v filmic.ColorScienceVersion) string  { return v.String() }
func curveTypeName(v filmic.CurveType) string          { return v.String() }

func parsePreserveColor(s string) filmic.PreserveColor {
	switch s {
	case "max-rgb":
		return filmic.PreserveColorMaxRGB
	case "luminance":
		return filmic.PreserveColorLuminance
	case "power-norm":
		return filmic.PreserveColorPowerNorm
	default:
		return filmic.PreserveColorNone
	}
}

func parseVersion(s string) filmic.ColorScienceVersion {
	if s == "v2" {
		return filmic.VersionV2
	}
	return filmic.VersionV1
}

func parseCurveType(s string) filmic.CurveType {
	if s == "poly3" {
		return filmic.CurvePoly3
	}
	return filmic.CurvePoly4
}
