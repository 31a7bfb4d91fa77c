package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param      *Parameter
	defaultSet bool
	plainDef   float64
}

// New creates a new parameter builder
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Range:     Linear(0, 1),
			Flags:     CanAutomate,
		},
	}
}

// Key sets the state key. Defaults to nothing, in which case the parameter is
// persisted by ID only.
func (b *Builder) Key(key string) *Builder {
	b.param.Key = key
	return b
}

// Range sets the min and max values with a linear response
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Range = Linear(min, max)
	return b
}

// Biased sets the min and max values with a power-curve response
func (b *Builder) Biased(min, max, bias float64) *Builder {
	b.param.Range = Biased(min, max, bias)
	return b
}

// Default sets the default value (in plain range, not normalized)
func (b *Builder) Default(value float64) *Builder {
	b.defaultSet = true
	b.plainDef = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter
func (b *Builder) Build() *Parameter {
	// The default is resolved last so it follows whatever range was set
	if b.defaultSet {
		b.param.DefaultValue = b.param.Range.ToNormalized(b.plainDef)
	}
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}
