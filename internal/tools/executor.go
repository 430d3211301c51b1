// In file: internal/tools/executor.go
package tools

import "context"

// Tool is the contract every invocable tool implements.
//
// Invoke receives a request body that has already been checked against the
// tool's Parameters schema. The returned value is encoded as the JSON response
// body. Failures of the external collaborator behind the tool should be
// reported as *CollaboratorError; anything else is treated as an internal fault.
type Tool interface {
	Definition() Definition
	Invoke(ctx context.Context, arguments []byte) (any, error)
}
