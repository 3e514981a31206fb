package builtin

import (
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// GetArgs extracts the arguments map from a CallToolRequest.
// Returns an error if the arguments are not in the expected format.
func GetArgs(req mcplib.CallToolRequest) (map[string]any, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid arguments format")
	}
	return args, nil
}

// GetStringArg extracts a required string argument from the arguments map.
// Returns an error if the argument is missing or not a string.
func GetStringArg(args map[string]any, name string) (string, error) {
	val, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%s argument is required and must be a string", name)
	}
	return val, nil
}

// GetOptionalStringArg extracts an optional string argument from the arguments map.
// Returns the default value if the argument is missing or not a string.
func GetOptionalStringArg(args map[string]any, name string, defaultVal string) string {
	if val, ok := args[name].(string); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetRequiredStringArg is a convenience function that combines GetArgs and GetStringArg.
// It extracts a required string argument directly from a CallToolRequest.
func GetRequiredStringArg(req mcplib.CallToolRequest, name string) (string, error) {
	args, err := GetArgs(req)
	if err != nil {
		return "", err
	}
	return GetStringArg(args, name)
}

// GetNumberArg extracts a required number argument from the arguments map.
// JSON numbers decode as float64; integer types are accepted for in-process callers.
func GetNumberArg(args map[string]any, name string) (float64, error) {
	switch v := args[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s argument is required and must be a number", name)
	}
}

// GetOptionalNumberArg extracts an optional number argument from the arguments map.
// The second result reports whether the argument was present and a number.
func GetOptionalNumberArg(args map[string]any, name string) (float64, bool) {
	v, err := GetNumberArg(args, name)
	return v, err == nil
}

// GetBoolArg extracts a required boolean argument from the arguments map.
func GetBoolArg(args map[string]any, name string) (bool, error) {
	val, ok := args[name].(bool)
	if !ok {
		return false, fmt.Errorf("%s argument is required and must be a boolean", name)
	}
	return val, nil
}
