package servers

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen -generate types,server -package servers -o servers.gen.go openapi.yaml

//go:embed openapi.yaml
var rawSpec []byte

var (
	specOnce   sync.Once
	loadedSpec *openapi3.T
	specErr    error
)

// GetSwagger returns the parsed and validated OpenAPI document embedded in the
// binary. The document is shared; callers must not modify it.
func GetSwagger() (*openapi3.T, error) {
	specOnce.Do(func() {
		loader := openapi3.NewLoader()
		loadedSpec, specErr = loader.LoadFromData(rawSpec)
		if specErr != nil {
			return
		}
		specErr = loadedSpec.Validate(loader.Context)
	})
	return loadedSpec, specErr
}

// RawSpec returns the embedded document as written.
func RawSpec() []byte {
	return rawSpec
}
