package graph

// File represents a parsed swift source with its top level types
type File struct {
	Name   string  // File name
	Path   string  // File path
	Source []byte  // Original source
	Types  []*Type // Types declared at top level
	Hash   uint64  // Source hash

	typeMap map[string]int // Map of types for quick lookup
}

// Text returns source text for a span
func (f *File) Text(span Span) string {
	return span.Text(f.Source)
}

// LookupType retrieves a top level type by name
func (f *File) LookupType(name string) *Type {
	if len(f.typeMap) == 0 {
		f.IndexTypes()
	}
	if idx, ok := f.typeMap[name]; ok && idx < len(f.Types) {
		return f.Types[idx]
	}
	return nil
}

func (f *File) IndexTypes() {
	f.typeMap = make(map[string]int)
	for i, typ := range f.Types {
		if typ == nil {
			continue
		}
		if _, ok := f.typeMap[typ.Name]; !ok {
			f.typeMap[typ.Name] = i
		}
	}
}

// Walk visits every type declared in the file, including member types and types declared
// inside initializer bodies, children first
func (f *File) Walk(visitor func(typ *Type) error) error {
	for _, typ := range f.Types {
		if err := typ.Walk(visitor); err != nil {
			return err
		}
	}
	return nil
}

// Emitter prints a file with its pending changes
type Emitter interface {
	Emit(file *File) ([]byte, error)
}

// Content reconstructs the content of a file with the supplied emitter
func (f *File) Content(generator Emitter) ([]byte, error) {
	return generator.Emit(f)
}
