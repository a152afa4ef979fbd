// Package gemini implements the driven upstream ports against the Gemini API.
//
// Client sends JSON requests (store and document CRUD, imports, operations,
// models, generateContent). Uploader runs the two-phase resumable upload
// protocol against the upload endpoint. Both apply the same retry policy and
// classify every failure as a *domain.UpstreamError.
package gemini
