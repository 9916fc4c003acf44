// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether an author affiliation string names a
// commercial pharmaceutical or biotech organization and extracts the
// organization name when it does.
// Implements: prd002-classification (R1-R5);
//
//	docs/ARCHITECTURE § Classification.
package classify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Tables holds the keyword tables the classifier matches against. All
// entries are matched case-insensitively as substrings. A Tables value is
// read-only after construction and safe to share across goroutines.
type Tables struct {
	// KnownCompanies are brand-name fragments of major pharma/biotech
	// firms. A hit is the strongest positive signal (R1.1).
	KnownCompanies []string `yaml:"known_companies"`

	// AcademicKeywords indicate a university, hospital, or other
	// non-commercial institution. A hit is a hard negative signal (R1.2).
	AcademicKeywords []string `yaml:"academic_keywords"`

	// SectorKeywords are generic pharma/biotech sector words, the
	// lowest-confidence positive signal (R1.3).
	SectorKeywords []string `yaml:"sector_keywords"`
}

// DefaultTables returns the built-in keyword tables.
func DefaultTables() Tables {
	return Tables{
		KnownCompanies: []string{
			"pfizer", "merck", "novartis", "roche", "sanofi", "gsk",
			"glaxosmithkline", "astrazeneca", "johnson & johnson", "j&j",
			"janssen", "lilly", "eli lilly", "abbvie", "bristol myers squibb",
			"bms", "gilead", "amgen", "biogen", "regeneron", "moderna",
			"vertex", "bayer", "boehringer ingelheim", "genentech", "takeda",
			"novo nordisk", "astellas", "daiichi sankyo", "celgene", "servier",
			"teva", "otsuka", "eisai", "alexion", "biomarin", "incyte",
			"illumina", "iqvia", "medimmune", "grail", "23andme", "beam",
			"editas", "crispr", "intellia", "allogene", "sarepta",
			"bluebird bio", "sage therapeutics", "alnylam", "mirati", "seagen",
			"blueprint medicines", "acceleron", "exelixis", "guardant health",
			"applied therapeutics",
		},
		AcademicKeywords: []string{
			"university", "college", "institute", "school of medicine",
			"academy", "hospital", "medical center", "clinic",
			"medical school", "faculty", "department of", "center for",
			"research center", "national institute", "foundation",
			"laboratory of", "health system",
		},
		SectorKeywords: []string{
			"pharma", "pharmaceutical", "therapeutics", "biopharm",
			"biotech", "biologics", "laboratories", "medicines", "vaccines",
			"health products", "bioscience", "life science", "drug",
			"biopharma", "genomics", "diagnostics", "medical technology",
			"biotechnology",
		},
	}
}

// LoadTables reads keyword tables from a YAML file. Lists absent from the
// file keep their built-in defaults, so a file can override a single table.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tables file: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parsing tables file %s: %w", path, err)
	}

	defaults := DefaultTables()
	if len(t.KnownCompanies) == 0 {
		t.KnownCompanies = defaults.KnownCompanies
	}
	if len(t.AcademicKeywords) == 0 {
		t.AcademicKeywords = defaults.AcademicKeywords
	}
	if len(t.SectorKeywords) == 0 {
		t.SectorKeywords = defaults.SectorKeywords
	}
	return t, nil
}
