package cmd

import "github.com/samwightt/gqlz/pkg/query"

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type ValidationError struct {
	Message   string     `json:"message"`
	Rule      string     `json:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// BuildResult is the json output of build.
type BuildResult struct {
	query.Document
	Validation *ValidationResult `json:"validation,omitempty"`
}

type PathInfo struct {
	Path   string `json:"path"`
	Scalar string `json:"scalar"`
}

type TableEntry struct {
	Table  string `json:"table"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}
