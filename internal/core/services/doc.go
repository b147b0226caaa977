// Package services implements the driving port interfaces.
// Services contain the core conversion logic and orchestrate
// calls to driven ports (parsers, processors, writers).
//
// Services are pure Go with no CGO.
package services
