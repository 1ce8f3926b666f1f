// Package modelconfig locates and parses the model configuration document
// (the HuggingFace-style config.json) a compile job starts from.
//
// Parsing goes through the HCL JSON front end, so syntax errors come back as
// HCL diagnostics with file positions, and every top-level property becomes a
// cty.Value the inference stages can query with typed accessors.
package modelconfig
