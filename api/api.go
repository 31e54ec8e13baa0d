// Package api carries the OpenAPI document of the prep center HTTP interface.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
