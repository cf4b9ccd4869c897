// Package tools defines the capability contract, the tool outcome algebra,
// and the built-in tool implementations.
//
// Includes:
//   - Capability: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Result: immutable tool outcome with Combine and wire conversion.
//   - Collection: name-keyed registry with failure-isolating dispatch.
//   - Built-ins: bash, computer, edit_file, read_file, list_files.
//   - Invariants: a dispatch failure is always folded into Result.Error,
//     never surfaced as an error to the conversation loop.
package tools
