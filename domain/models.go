package domain

// ChangeSet is the ordered set of repository-relative file paths that differ
// between two git refs. Paths are unique and sorted; a rename contributes the
// old path and the new path as two separate entries.
type ChangeSet []string

// JobSpecification is the resolved (name, template, parameters) triple needed
// to render one artifact. It is produced either by a ChangeClassifier from a
// changed path or by the JobCatalog from a requested job name.
type JobSpecification struct {
	JobName     string
	TemplateKey string
	Parameters  map[string]string
}

// CatalogEntry is one static registry record: a job name bound to a template
// key and its default parameters. The catalog is loaded once at process start
// and never mutated afterwards.
type CatalogEntry struct {
	Name        string
	TemplateKey string
	Parameters  map[string]string
}

// GeneratedArtifact is the rendered output for one job specification.
// DestinationPath is relative to the writer's output root.
type GeneratedArtifact struct {
	DestinationPath string
	Content         []byte
}

// WriteResult describes a completed artifact write.
type WriteResult struct {
	Path       string // absolute path of the written file
	BytesCount int
	Checksum   string // hex SHA-256 of the written content
	BackupPath string // where the previous version was saved, if any
	Overwrote  bool
}

// HistoryEntry is one record in the operation journal.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Operation string `json:"operation"`
	Job       string `json:"job"`
	Template  string `json:"template,omitempty"`
	Path      string `json:"path,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
	Result    string `json:"result"`
}

// CompareResult summarizes the line-level difference between two artifacts.
type CompareResult struct {
	Identical  bool
	LinesOld   int
	LinesNew   int
	Insertions int
	Deletions  int
}
