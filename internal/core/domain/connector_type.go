package domain

// AuthMethod defines how a content source authenticates.
type AuthMethod string

const (
	// AuthMethodNone requires no authentication (e.g., filesystem).
	AuthMethodNone AuthMethod = "none"
	// AuthMethodPAT uses a Personal Access Token.
	AuthMethodPAT AuthMethod = "pat"
)

// SourceType identifies a content source implementation.
type SourceType string

const (
	// SourceTypeGitHub reads the upstream repository through the GitHub API.
	SourceTypeGitHub SourceType = "github"
	// SourceTypeFilesystem reads a local checkout of the upstream repository.
	SourceTypeFilesystem SourceType = "filesystem"
)

// Valid reports whether t is a known source type.
func (t SourceType) Valid() bool {
	return t == SourceTypeGitHub || t == SourceTypeFilesystem
}
