package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"personarank/internal/adapter/extract"
	"personarank/internal/adapter/fs"
	"personarank/internal/adapter/segment"
	"personarank/internal/domain"
)

var sectionsJSON bool

var sectionsCmd = &cobra.Command{
	Use:   "sections [file ...]",
	Short: "Show how documents are segmented",
	Long: `Extract and segment documents without scoring them, to inspect section
boundaries, titles, and page attribution. With no arguments, the documents
from the run configuration are used.

Examples:
  personarank sections --input ./docs report.pdf
  personarank sections --input ./docs --json`,
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
	sectionsCmd.Flags().BoolVar(&sectionsJSON, "json", false, "output as JSON")
	sectionsCmd.Flags().StringVarP(&rankRunConfig, "run-config", "r", "", "run config JSON (default <input>/input_config.json)")
}

type sectionDump struct {
	Document string `json:"document"`
	Page     int    `json:"page_number"`
	Title    string `json:"section_title"`
	Chars    int    `json:"chars"`
	Body     string `json:"body"`
}

func runSections(cmd *cobra.Command, args []string) error {
	var docPaths []string
	if len(args) > 0 {
		for _, a := range args {
			docPaths = append(docPaths, filepath.Join(inputDir, a))
		}
	} else {
		rc, err := loadRunConfig()
		if err != nil {
			return err
		}
		docPaths, err = fs.NewResolver(inputDir).Resolve(rc.InputDocuments)
		if err != nil {
			return err
		}
	}

	extractor := extract.New(nil, logger)
	segmenter := segment.New(cfg.Segment.MaxChars, cfg.Segment.MinChars, logger)

	var dump []sectionDump
	for i, path := range docPaths {
		id := filepath.Base(path)

		pages, err := extractor.Extract(path)
		if err != nil {
			logger.Warn("skipping document: extraction failed", "doc", id, "error", err)
			continue
		}

		sections, err := segmenter.Segment(domain.Document{ID: id, Path: path, Order: i, Pages: pages})
		if err != nil {
			return fmt.Errorf("segment %s: %w", id, err)
		}

		for _, s := range sections {
			dump = append(dump, sectionDump{
				Document: id,
				Page:     s.Page,
				Title:    s.Title,
				Chars:    s.Len(),
				Body:     s.Body,
			})
		}
	}

	if sectionsJSON {
		out, _ := json.MarshalIndent(dump, "", "  ")
		fmt.Println(string(out))
		return nil
	}

	if len(dump) == 0 {
		fmt.Println("No sections produced.")
		return nil
	}
	for i, s := range dump {
		fmt.Printf("--- [%d] %s p.%d (%d chars) %s ---\n", i+1, s.Document, s.Page, s.Chars, s.Title)
		body := s.Body
		if len(body) > 300 {
			body = body[:300] + "..."
		}
		fmt.Println(body)
		fmt.Println()
	}

	return nil
}
