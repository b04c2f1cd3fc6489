package omni

// Model is the root of a type graph.
// Types lists the exported roots in declaration order.
type Model struct {
	Name          string
	Description   string
	Version       string
	Types         []Type
	Endpoints     []*Endpoint
	Continuations []*Continuation
}

func (*Model) ownsTypes() {}

// Endpoint is an operation whose request and responses reference types.
type Endpoint struct {
	Name      string
	Path      string
	Request   *Input
	Responses []*Output
}

// Input is the request body of an endpoint.
type Input struct {
	ContentType string
	Type        Type
}

func (*Input) ownsTypes() {}

// Output is one possible response of an endpoint.
type Output struct {
	Name        string
	ContentType string
	Type        Type
	Error       bool
}

func (*Output) ownsTypes() {}

// Continuation links response values to request values of later calls.
type Continuation struct {
	Mappings []*ContinuationMapping
}

// ContinuationMapping copies the value at Source to Target.
type ContinuationMapping struct {
	Source []*Property
	Target []*Property
}

// AddType appends t to the model's exported roots.
func (m *Model) AddType(t Type) {
	m.Types = append(m.Types, t)
}

// FindType returns the root whose resolved name is name, or nil.
func (m *Model) FindType(name string) Type {
	for _, t := range m.Types {
		if n := NameOf(t); n != nil && Resolve(n) == name {
			return t
		}
	}
	return nil
}
