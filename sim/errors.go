package sim

import "fmt"

// InvalidRangeError reports a malformed sampling range in the configuration:
// a minimum above its maximum, a non-positive variance bound, or a non-finite
// endpoint. It is returned by validation before any arm is drawn.
type InvalidRangeError struct {
	Field  string // "mean" or "variance"
	Min    float64
	Max    float64
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s range [%g, %g]: %s", e.Field, e.Min, e.Max, e.Reason)
}

// ConfigurationError reports a simulation shape that cannot run: a
// non-positive horizon or arm count, a horizon too short to visit every arm
// once, or an unknown policy, reward model, or RNG source name. It is
// returned before round 1; once a run starts, no errors occur.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
