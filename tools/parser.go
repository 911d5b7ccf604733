package tools

import (
	"encoding/json"

	"github.com/petal-labs/calla/core"
)

// ParseParams decodes an accepted call's parameters into a typed struct.
//
// Example:
//
//	type WriteFileArgs struct {
//	    Path    string `json:"path"`
//	    Content string `json:"content"`
//	}
//
//	args, err := tools.ParseParams[WriteFileArgs](call)
//	if err != nil {
//	    return nil, err
//	}
//	// Use args.Path, args.Content
func ParseParams[T any](call core.ProcessedCall) (*T, error) {
	raw, err := json.Marshal(call.Parameters)
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
