// Package gain provides decibel conversions.
package gain

import "github.com/cwbudde/algo-dsp/dsp/core"

// MinDB is the level treated as silence
const MinDB = -200.0

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return core.DBToLinear(db)
}
