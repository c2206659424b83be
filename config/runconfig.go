package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"personarank/internal/domain"
)

// RunConfig describes a single ranking run: who is asking, what they are
// trying to do, and which documents to rank.
type RunConfig struct {
	Persona        string   `json:"persona"`
	JobToBeDone    string   `json:"job_to_be_done"`
	InputDocuments []string `json:"input_documents"`
}

// runConfigFile accepts both the direct format and the metadata-wrapped
// format, and the legacy "documents" key alongside "input_documents".
type runConfigFile struct {
	Metadata       *runConfigFile `json:"metadata"`
	Persona        string         `json:"persona"`
	JobToBeDone    string         `json:"job_to_be_done"`
	InputDocuments []string       `json:"input_documents"`
	Documents      []string       `json:"documents"`
}

// LoadRunConfig reads and validates a run configuration JSON file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config: %w", err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig parses run configuration JSON and validates it.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	var raw runConfigFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}

	src := &raw
	if raw.Metadata != nil {
		src = raw.Metadata
	}

	docs := src.InputDocuments
	if len(docs) == 0 {
		docs = src.Documents
	}

	rc := &RunConfig{
		Persona:        src.Persona,
		JobToBeDone:    src.JobToBeDone,
		InputDocuments: docs,
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}

// Validate checks the run configuration for required fields.
func (rc *RunConfig) Validate() error {
	if strings.TrimSpace(rc.Persona) == "" {
		return &domain.ValidationError{Field: "persona", Reason: "must not be empty"}
	}
	if strings.TrimSpace(rc.JobToBeDone) == "" {
		return &domain.ValidationError{Field: "job_to_be_done", Reason: "must not be empty"}
	}
	if len(rc.InputDocuments) == 0 {
		return &domain.ValidationError{Field: "input_documents", Reason: "must list at least one document"}
	}
	for _, d := range rc.InputDocuments {
		if strings.TrimSpace(d) == "" {
			return &domain.ValidationError{Field: "input_documents", Reason: "entries must not be empty"}
		}
	}
	return nil
}
