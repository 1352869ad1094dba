package model

// Applied records one mutator application, in application order.
type Applied struct {
	Kind     Kind   `yaml:"kind"`
	LongName string `yaml:"name"`
	Stub     string `yaml:"stub,omitempty"`
	// Layer is 1-based; encoder/compressor stages after the layers carry the
	// index of the last layer.
	Layer int `yaml:"layer"`
}

// Token returns the ordering token that reproduces this application.
func (a Applied) Token() string {
	return OrderToken{Kind: a.Kind, LongName: a.LongName, Stub: a.Stub}.String()
}

// Result is the outcome of a generation.
type Result struct {
	Payload  string
	Mutators []Applied
	Seed     uint64
}
