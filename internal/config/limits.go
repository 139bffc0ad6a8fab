package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 128

	// MaxProjectDescriptionLength is the maximum length for project descriptions.
	MaxProjectDescriptionLength = 400

	// MaxNodeNameLength is the maximum length for a project node's name.
	MaxNodeNameLength = 255

	// MaxDictionaryTermLength is the maximum length for a dictionary term.
	MaxDictionaryTermLength = 255
)
