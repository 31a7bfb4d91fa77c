package param

// Common parameter helpers

// PercentParameter creates a 0-100% parameter with the given response bias
func PercentParameter(id uint32, name string, bias, defaultPercent float64) *Builder {
	return New(id, name).
		Biased(0, 100, bias).
		Default(defaultPercent).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// DecibelParameter creates a dB parameter over [minDB, maxDB] with the given response bias
func DecibelParameter(id uint32, name string, minDB, maxDB, bias, defaultDB float64) *Builder {
	return New(id, name).
		Biased(minDB, maxDB, bias).
		Default(defaultDB).
		Unit("dB").
		Formatter(DecibelFormatter, DecibelParser)
}
