package cache

// DiagramKeyOpts are the build parameters that change a diagram.
type DiagramKeyOpts struct {
	Order    []string `json:"order"`
	Strategy string   `json:"strategy,omitempty"`
}

// ArtifactKeyOpts are the render parameters that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Backend string `json:"backend"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey identifies the diagram of formula under opts. The strategy
	// never changes the result, so implementations may ignore it.
	DiagramKey(formula string, opts DiagramKeyOpts) string

	// ArtifactKey identifies one rendering of a DOT document.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes its inputs into "type:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DiagramKey(formula string, opts DiagramKeyOpts) string {
	return hashKey(KeyTypeDiagram, formula, opts.Order)
}

func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, dotHash, opts)
}
