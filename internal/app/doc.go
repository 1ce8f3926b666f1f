// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the resolution pipeline that turns a Config
// into a compile job descriptor, decoupled from any specific entrypoint like
// a CLI.
package app
