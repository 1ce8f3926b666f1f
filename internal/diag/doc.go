// Package diag defines the error taxonomy of the compile job resolution
// pipeline. Every stage reports failures as a *diag.Error carrying the kind of
// failure, the stage that produced it, and the flag and value the user should
// fix. Callers match on kinds with IsKind or errors.As.
package diag
