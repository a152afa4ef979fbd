// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Upstream: Sends JSON requests to the Gemini API with retry applied
//   - FileUploader: Runs the two-phase resumable upload protocol
//   - ResponseNormaliser: Turns a generateContent response into a SearchResult
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
