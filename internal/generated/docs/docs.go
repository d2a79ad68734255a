// Package docs publishes the embedded OpenAPI document to the swag registry so
// that echo-swagger can serve it at /swagger/doc.json.
package docs

import (
	"encoding/json"
	"sync"

	"climasite/internal/generated/servers"

	"github.com/swaggo/swag"
)

// InstanceName is the swag instance echo-swagger reads by default.
const InstanceName = swag.Name

type document struct {
	json string
}

func (d document) ReadDoc() string {
	return d.json
}

var (
	registerOnce sync.Once
	registerErr  error
)

// Register renders the OpenAPI document as JSON and registers it once.
// Later calls return the outcome of the first one.
func Register() error {
	registerOnce.Do(func() {
		doc, err := servers.GetSwagger()
		if err != nil {
			registerErr = err
			return
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			registerErr = err
			return
		}

		swag.Register(InstanceName, document{json: string(payload)})
	})
	return registerErr
}
