// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags into the application's internal configuration; the
// values it cannot judge on their own (paths, model types, targets) are left
// to the pipeline in package app.
package cli
