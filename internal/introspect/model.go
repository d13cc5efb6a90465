package introspect

// ModelAssembly is the in-memory Assembly implementation built by the suite
// loader and by tests.
type ModelAssembly struct {
	name        string
	annotations []Annotation
	collections []*ModelCollection
}

// NewAssembly creates an in-memory assembly.
func NewAssembly(name string, annotations ...Annotation) *ModelAssembly {
	return &ModelAssembly{name: name, annotations: annotations}
}

// AddCollection adds a named collection to the assembly.
func (a *ModelAssembly) AddCollection(name string) *ModelCollection {
	c := &ModelCollection{name: name, assembly: a}
	a.collections = append(a.collections, c)
	return c
}

func (a *ModelAssembly) Name() string { return a.name }

func (a *ModelAssembly) Annotations(kind string) []Annotation {
	return filterAnnotations(a.annotations, kind)
}

func (a *ModelAssembly) Collections() []Collection {
	out := make([]Collection, len(a.collections))
	for i, c := range a.collections {
		out[i] = c
	}
	return out
}

// ModelCollection is the in-memory Collection implementation.
type ModelCollection struct {
	name     string
	assembly *ModelAssembly
	classes  []*ModelClass
}

// AddClass adds a class to the collection.
func (c *ModelCollection) AddClass(name string, annotations ...Annotation) *ModelClass {
	cl := &ModelClass{name: name, collection: c, annotations: annotations}
	c.classes = append(c.classes, cl)
	return cl
}

func (c *ModelCollection) Name() string { return c.name }

func (c *ModelCollection) Classes() []Class {
	out := make([]Class, len(c.classes))
	for i, cl := range c.classes {
		out[i] = cl
	}
	return out
}

// ModelClass is the in-memory Class implementation.
type ModelClass struct {
	name        string
	collection  *ModelCollection
	annotations []Annotation
	methods     []*ModelMethod
}

// AddMethod adds a method to the class.
func (c *ModelClass) AddMethod(name string, annotations ...Annotation) *ModelMethod {
	m := &ModelMethod{name: name, class: c, annotations: annotations}
	c.methods = append(c.methods, m)
	return m
}

func (c *ModelClass) Name() string { return c.name }

func (c *ModelClass) Annotations(kind string) []Annotation {
	return filterAnnotations(c.annotations, kind)
}

func (c *ModelClass) Assembly() Assembly { return c.collection.assembly }

func (c *ModelClass) Methods() []Method {
	out := make([]Method, len(c.methods))
	for i, m := range c.methods {
		out[i] = m
	}
	return out
}

// ModelMethod is the in-memory Method implementation.
type ModelMethod struct {
	name        string
	class       *ModelClass
	annotations []Annotation
	sourceFile  string
	sourceLine  int
}

// SetSource records where the method was declared.
func (m *ModelMethod) SetSource(file string, line int) {
	m.sourceFile = file
	m.sourceLine = line
}

func (m *ModelMethod) Name() string { return m.name }

func (m *ModelMethod) Annotations(kind string) []Annotation {
	return filterAnnotations(m.annotations, kind)
}

func (m *ModelMethod) Class() Class { return m.class }

func (m *ModelMethod) Source() (string, int) { return m.sourceFile, m.sourceLine }

func filterAnnotations(annotations []Annotation, kind string) []Annotation {
	if kind == "" {
		return annotations
	}
	var out []Annotation
	for _, a := range annotations {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
