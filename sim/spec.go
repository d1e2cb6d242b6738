package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VarianceLevels are the named variance-range presets accepted in experiment
// specs, a shorthand for the explicit variance bounds.
var VarianceLevels = map[string][2]float64{
	"low":    {1, 5},
	"medium": {5, 20},
	"high":   {20, 50},
}

// ExperimentSpec is the YAML form external callers configure an experiment
// with. Loaded from YAML via LoadExperimentSpec(path); resolved into an
// engine Config with ToConfig.
type ExperimentSpec struct {
	Rounds int64 `yaml:"rounds"`
	Arms   int   `yaml:"arms"`
	Seed   int64 `yaml:"seed"`

	MeanMin float64 `yaml:"mean_min"`
	MeanMax float64 `yaml:"mean_max"`

	// Either a named preset or explicit bounds; setting both is an error.
	VarianceLevel string  `yaml:"variance_level,omitempty"`
	VarianceMin   float64 `yaml:"variance_min,omitempty"`
	VarianceMax   float64 `yaml:"variance_max,omitempty"`

	RewardModel string   `yaml:"reward_model,omitempty"`
	RNGSource   string   `yaml:"rng_source,omitempty"`
	Policies    []string `yaml:"policies,omitempty"`

	VarianceProxy float64 `yaml:"variance_proxy,omitempty"`

	Trials          int  `yaml:"trials,omitempty"`
	Parallel        bool `yaml:"parallel,omitempty"`
	IndependentArms bool `yaml:"independent_arms,omitempty"`
}

// LoadExperimentSpec reads and parses a YAML experiment specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	return ParseExperimentSpec(data)
}

// ParseExperimentSpec strictly decodes YAML bytes into an ExperimentSpec.
func ParseExperimentSpec(data []byte) (*ExperimentSpec, error) {
	var spec ExperimentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Validate checks the spec-level fields Config.Validate cannot see: the
// choice between a variance preset and explicit bounds. Everything else is
// validated when the resolved Config is consumed.
func (s *ExperimentSpec) Validate() error {
	if s.VarianceLevel == "" {
		return nil
	}
	if _, ok := VarianceLevels[s.VarianceLevel]; !ok {
		return fmt.Errorf("unknown variance_level %q; valid: low, medium, high", s.VarianceLevel)
	}
	if s.VarianceMin != 0 || s.VarianceMax != 0 {
		return fmt.Errorf("variance_level %q conflicts with explicit variance bounds", s.VarianceLevel)
	}
	return nil
}

// ToConfig resolves the spec into the engine configuration, expanding a
// variance preset into its bounds, and fully validates the result.
func (s *ExperimentSpec) ToConfig() (Config, error) {
	if err := s.Validate(); err != nil {
		return Config{}, err
	}
	cfg := Config{
		Rounds:          s.Rounds,
		Arms:            s.Arms,
		Seed:            s.Seed,
		MeanMin:         s.MeanMin,
		MeanMax:         s.MeanMax,
		VarianceMin:     s.VarianceMin,
		VarianceMax:     s.VarianceMax,
		RewardModel:     s.RewardModel,
		RNGSource:       s.RNGSource,
		Policies:        append([]string(nil), s.Policies...),
		VarianceProxy:   s.VarianceProxy,
		Trials:          s.Trials,
		Parallel:        s.Parallel,
		IndependentArms: s.IndependentArms,
	}
	if s.VarianceLevel != "" {
		bounds := VarianceLevels[s.VarianceLevel]
		cfg.VarianceMin, cfg.VarianceMax = bounds[0], bounds[1]
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
