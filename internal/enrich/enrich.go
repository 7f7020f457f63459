package enrich

// AccessContext carries optional caller-supplied metadata about a single
// access. Empty fields are filled in by a Resolver.
type AccessContext struct {
	Source   string
	Location string
}

// Resolver classifies how and where an access happened. A real referrer or
// geolocation backend can be substituted without touching the engine.
type Resolver interface {
	Resolve(ctx AccessContext) (source, location string)
}

// Default tags applied when neither the context nor the resolver knows
// better.
const (
	DefaultSource   = "direct"
	DefaultLocation = "unknown"
)

// Static fills empty context fields with fixed tags.
type Static struct {
	Source   string
	Location string
}

// NewStatic returns a Static resolver with the default tags.
func NewStatic() *Static {
	return &Static{Source: DefaultSource, Location: DefaultLocation}
}

func (s *Static) Resolve(ctx AccessContext) (string, string) {
	source, location := ctx.Source, ctx.Location
	if source == "" {
		source = s.Source
	}
	if location == "" {
		location = s.Location
	}
	return source, location
}
