package checks

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"site-manager/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport compares live tables with the GORM models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// Equivalent spellings across dialects.
var typeAliases = map[string][]string{
	"varchar": {"varchar", "character varying"},
	"text":    {"text", "longtext", "mediumtext"},
}

var typeParams = regexp.MustCompile(`\(.*\)`)

// CheckSchema verifies that every column declared by the models exists, and that columns
// with an explicit gorm type have a compatible live type.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	cache := &sync.Map{}
	for _, model := range models {
		s, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		tbl := TableReport{
			MissingColumns: []string{},
			TypeMismatches: []string{},
			Status:         "ok",
		}

		actual, err := database.GetTableColumns(db, s.Table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", s.Table, err))
			report.Matched = false
			tbl.Status = "error"
			report.Tables[s.Table] = tbl
			continue
		}
		if len(actual) == 0 {
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[s.Table] = tbl
			continue
		}

		live := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			live[col.Field] = col
		}

		for _, field := range s.Fields {
			if field.DBName == "" {
				continue
			}

			col, ok := live[strings.ToLower(field.DBName)]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, field.DBName)
				tbl.Status = "error"
				report.Matched = false
				continue
			}

			expected := strings.ToLower(field.TagSettings["TYPE"])
			if expected != "" && !typeMatches(expected, col.Type) {
				tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", field.DBName, expected, col.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[s.Table] = tbl
	}

	return report, nil
}

func typeMatches(expected, actual string) bool {
	base := strings.TrimSpace(typeParams.ReplaceAllString(expected, ""))
	candidates, ok := typeAliases[base]
	if !ok {
		candidates = []string{base}
	}
	for _, c := range candidates {
		if strings.Contains(actual, c) {
			return true
		}
	}
	return false
}
