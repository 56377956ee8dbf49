package types

// BatchJob is one row's unit of work, immutable once constructed by
// ingestion.
type BatchJob struct {
	RowNumber   int      `json:"row_number"` // 1-based
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Questions   []string `json:"questions,omitempty"`
	SafeTitle   string   `json:"safe_title"`
	FilePrefix  string   `json:"file_prefix"`
}

// FileType identifies the kind of artifact a batch row produced.
type FileType string

// Artifact kinds produced per batch row.
const (
	FileResume      FileType = "resume"
	FileCoverLetter FileType = "cover_letter"
	FileQuestion    FileType = "question"
)

// GeneratedFile records one artifact produced for a batch row, with both its
// durable location and its path inside the staging tree mirrored into the zip.
type GeneratedFile struct {
	Type     FileType `json:"type"`
	Title    string   `json:"title"`
	Folder   string   `json:"folder"`
	Filename string   `json:"filename"`
	Path     string   `json:"path"`
	ZipPath  string   `json:"zip_path"`
}

// RowError records a failure scoped to a single row or sheet. It never aborts
// sibling rows.
type RowError struct {
	Row   int    `json:"row"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// BatchResult is the aggregate outcome of a batch run: every artifact
// produced plus every per-row failure. A non-empty input yielding zero files
// is surfaced to callers as a distinct condition.
type BatchResult struct {
	Files  []GeneratedFile `json:"files"`
	Errors []RowError      `json:"errors,omitempty"`
}
