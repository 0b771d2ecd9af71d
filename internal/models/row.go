package models

// TableColumns is the fixed column order of the tabular artifact.
var TableColumns = []string{"file", "name", "value", "tags", "date"}

// Row is the flat record extracted from one accepted document.
// Nil pointers serialize as null (JSON/msgpack) and as empty CSV cells.
type Row struct {
	File  string   `json:"file" msgpack:"file"`
	Name  *string  `json:"name" msgpack:"name"`
	Value *float64 `json:"value" msgpack:"value"`
	Tags  *string  `json:"tags" msgpack:"tags"`
	Date  *string  `json:"date" msgpack:"date"`
}

// ValidationError records one rejected input file. The JSON field names
// match the summary artifact contract.
type ValidationError struct {
	File    string `json:"file"`
	Message string `json:"error"`
}

// SummaryStatistics is derived once per run from the full row and error
// sets. Mean/min/max are nil, not zero, when no row carries a value.
type SummaryStatistics struct {
	FilesOK     int               `json:"files_ok"`
	FilesFailed int               `json:"files_failed"`
	ValueCount  int               `json:"value_count"`
	ValueMean   *float64          `json:"value_mean"`
	ValueMin    *float64          `json:"value_min"`
	ValueMax    *float64          `json:"value_max"`
	Errors      []ValidationError `json:"errors"`
}
