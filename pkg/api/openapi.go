// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
	"github.com/telekom/tracemap/pkg"
	"github.com/telekom/tracemap/pkg/orchestrator"
	"gopkg.in/yaml.v3"
)

// openAPISpec describes /v1/results with the schema of a run as YAML.
func openAPISpec() ([]byte, error) {
	schema, err := openapi3gen.NewSchemaRefForValue(orchestrator.Run{}, nil)
	if err != nil {
		return nil, ErrCreateOpenapiSchema{name: "run", err: err}
	}

	op := openapi3.NewOperation()
	op.Summary = "The latest traced run"
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("The run with all traced targets").WithJSONSchemaRef(schema),
		}),
		openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("No run is available yet"),
		}),
	)

	version := pkg.Version
	if version == "" {
		version = "dev"
	}
	doc := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "tracemap",
			Description: "Traced network paths to configured targets",
			Version:     version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath("/v1/results", &openapi3.PathItem{Get: op})),
	}

	// yaml.v3 does not honor the json marshalers of openapi3
	raw, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi spec: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("failed to convert openapi spec: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal openapi spec: %w", err)
	}
	return out, nil
}
