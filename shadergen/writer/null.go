package writer

import "github.com/Carmen-Shannon/oxy-shadergen/shadergen/ir"

// nullWriter emits empty source for every program. It keeps the generation
// pipeline runnable on hosts with no shading backend: the program manager
// skips compilation for empty sources, so fingerprinting, caching, and scheme
// bookkeeping all still exercise end to end.
type nullWriter struct{}

var _ Writer = &nullWriter{}

// NewNullWriter creates the null writer, registered under the "null" tag.
//
// Returns:
//   - Writer: the new writer
func NewNullWriter() Writer {
	return &nullWriter{}
}

func (w *nullWriter) Language() string {
	return "null"
}

func (w *nullWriter) Write(_ ir.Program) (string, error) {
	return "", nil
}
