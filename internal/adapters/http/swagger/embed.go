package swagger

import _ "embed"

// Passengers is the OpenAPI document of the passenger query service.
//
//go:embed openapi/passengers.yaml
var Passengers []byte

// Predictor is the OpenAPI document of the survival scoring service.
//
//go:embed openapi/predictor.yaml
var Predictor []byte
