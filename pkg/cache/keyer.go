package cache

// ArtifactKeyOpts holds the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format        string `json:"format"`
	Numbering     bool   `json:"numbering"`
	SectionTitles bool   `json:"section_titles"`
	TemplateFrom  string `json:"template_from"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of the report
	// whose content hash is contentHash.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", contentHash, opts)
}
