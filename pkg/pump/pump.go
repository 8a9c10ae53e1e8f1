// Package pump recommends a dewatering pump class from the reserved hourly
// inflow.
package pump

import "fmt"

// Threshold is the reserved hourly flow, in m³/h, at and above which a
// portable drainage pump is no longer enough.
const Threshold = 6.0

// Tag identifies a pump recommendation.
type Tag string

const (
	PortableDrainagePump        Tag = "PortableDrainagePump"
	HighCapacityOrMultipleUnits Tag = "HighCapacityOrMultipleUnits"
)

// Advise returns the recommendation tag for the reserved hourly flow qr.
func Advise(qr float64) Tag {
	if qr < Threshold {
		return PortableDrainagePump
	}
	return HighCapacityOrMultipleUnits
}

// Description returns the human-readable recommendation.
func (t Tag) Description() string {
	switch t {
	case PortableDrainagePump:
		return "A portable drainage pump is sufficient (e.g. a small D8-class submersible unit)"
	case HighCapacityOrMultipleUnits:
		return "A more powerful pump or several units are required"
	}
	return string(t)
}

// RequiresCapacityStatement reports whether the report must state the
// minimum pump capacity.
func (t Tag) RequiresCapacityStatement() bool {
	return t == HighCapacityOrMultipleUnits
}

// CapacityStatement states the minimum pump capacity for the reserved
// hourly flow qr.
func CapacityStatement(qr float64) string {
	return fmt.Sprintf("A pump with a capacity of at least %.2f m³/h is required.", qr)
}
