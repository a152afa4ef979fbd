// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML or YAML configuration storage, chosen by file extension
//   - EnvStore: environment variable overlay for any ConfigStore
package file
