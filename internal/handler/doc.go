// Package handler groups the HTTP handlers by domain: hotel (hotels and
// rooms), guest, and reservation subpackages.
//
// The file keeps `internal/handler` a valid Go package so swagger tooling
// (`swag init --dir ./internal/handler`) does not warn about missing Go files.
package handler
