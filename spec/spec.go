// Package spec embeds the OpenAPI specification for the Lucky API.
// The server exposes it at /openapi.yaml.
package spec

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time,
// so the served contract always matches the binary.
//
//go:embed openapi.yaml
var OpenAPI []byte
