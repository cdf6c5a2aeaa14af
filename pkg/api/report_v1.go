package api

// VariantV1 is the stable JSON/JSONL schema for one shrink variant.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type VariantV1 struct {
	Length float64 `json:"length"`
	Path   string  `json:"path,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// FileResultV1 is the stable schema for one input morphology's outcome.
type FileResultV1 struct {
	File     string      `json:"file"`
	Stem     string      `json:"stem"`
	Error    string      `json:"error,omitempty"`
	Variants []VariantV1 `json:"variants,omitempty"`
}

// ReportV1 aggregates a whole batch run.
type ReportV1 struct {
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Files     []FileResultV1 `json:"files"`
}
