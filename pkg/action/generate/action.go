package generate

import (
	"github.com/doxybind/doxybind/pkg/generator"
)

// Generate runs one generation with the provided options.
func Generate(opts *generator.Options) (*generator.Result, error) {
	return generator.Run(opts)
}
