// Package normalisers holds implementations of driven.ResponseNormaliser.
//
// A normaliser turns a raw generateContent response into a domain.SearchResult.
// The grounding subpackage reads the candidate's grounding metadata.
package normalisers
