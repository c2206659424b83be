package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"personarank/internal/domain"
)

// Report is the serialized form of a ResultSet.
type Report struct {
	Metadata           ReportMetadata  `json:"metadata"`
	ExtractedSections  []ReportSection `json:"extracted_sections"`
	SubsectionAnalysis []ReportExcerpt `json:"subsection_analysis"`
}

// ReportMetadata describes the run.
type ReportMetadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ReportSection is one ranked section.
type ReportSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

// ReportExcerpt is the refined-text excerpt for one ranked section.
type ReportExcerpt struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// BuildReport converts a ResultSet into its output form.
func BuildReport(rs domain.ResultSet) Report {
	report := Report{
		Metadata: ReportMetadata{
			InputDocuments:      rs.Meta.InputDocuments,
			Persona:             rs.Meta.Persona,
			JobToBeDone:         rs.Meta.Job,
			ProcessingTimestamp: rs.Meta.Timestamp.Format(time.RFC3339),
		},
		ExtractedSections:  make([]ReportSection, 0, len(rs.Sections)),
		SubsectionAnalysis: make([]ReportExcerpt, 0, len(rs.Refinements)),
	}

	for _, s := range rs.Sections {
		report.ExtractedSections = append(report.ExtractedSections, ReportSection{
			Document:       s.Section.DocID,
			SectionTitle:   s.Section.Title,
			ImportanceRank: s.Rank,
			PageNumber:     s.Section.Page,
		})
	}
	for _, r := range rs.Refinements {
		report.SubsectionAnalysis = append(report.SubsectionAnalysis, ReportExcerpt{
			Document:    r.DocID,
			RefinedText: r.RefinedText,
			PageNumber:  r.Page,
		})
	}

	return report
}

// WriteReport serializes the report and writes it atomically: the file is
// staged next to the destination and renamed into place, so a failed run
// never leaves partial output behind.
func WriteReport(path string, rs domain.ResultSet) error {
	data, err := json.MarshalIndent(BuildReport(rs), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".personarank-*.json")
	if err != nil {
		return fmt.Errorf("stage output: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close output: %w", err)
	}

	// CreateTemp stages the file as 0600; give the result normal permissions.
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("set output permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize output: %w", err)
	}

	return nil
}
