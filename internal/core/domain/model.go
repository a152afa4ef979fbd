package domain

import "slices"

// GenerateContentMethod is the generation method a model must support to answer searches.
const GenerateContentMethod = "generateContent"

// Model describes an upstream generative model.
type Model struct {
	// Name is the model identifier without the "models/" prefix.
	Name string `json:"name"`

	// DisplayName is the human-readable name.
	DisplayName string `json:"displayName"`

	// Description is the upstream description.
	Description string `json:"description"`

	// SupportedMethods lists the generation methods the model advertises.
	SupportedMethods []string `json:"supportedMethods"`
}

// SupportsGeneration returns true if the model can serve generateContent.
func (m Model) SupportsGeneration() bool {
	return slices.Contains(m.SupportedMethods, GenerateContentMethod)
}
