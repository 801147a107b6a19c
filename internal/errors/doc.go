// Package errors provides structured, actionable errors for the feedback
// server and CLI.
//
// Each error has a registered code (e.g., "F100") mapping to a short
// message, a longer explanation and a category:
//   - config: feedback.json problems
//   - request: malformed HTTP requests to the server
//   - server: listener and shutdown failures
//   - cli: command-line usage
//
// # Usage
//
//	err := errors.New("F100").
//	    WithDetail("unexpected end of JSON input").
//	    WithSuggestion("Check that feedback.json is valid JSON")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR F100: Invalid feedback.json
//	//
//	//   unexpected end of JSON input
//	//
//	//   Hint: Check that feedback.json is valid JSON
//
// Errors from this package never reach end users as toasts; the reporter in
// pkg/apierror handles those.
package errors
