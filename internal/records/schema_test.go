package records

import (
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FlatFilers/HCMShow-sub000/pkg/database"
)

// requiredColumns extracts NOT NULL columns without a default, key, timestamp or reference from a CREATE TABLE block.
func requiredColumns(t *testing.T, ddl, table string) []string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + table + ` \((.*?)\n\);`)
	m := re.FindStringSubmatch(ddl)
	require.NotNil(t, m, "table %s not found in migrations", table)

	var cols []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] == "UNIQUE" || fields[0] == "PRIMARY" || fields[0] == "CONSTRAINT" {
			continue
		}
		if !strings.Contains(line, "NOT NULL") ||
			strings.Contains(line, "DEFAULT") ||
			strings.Contains(line, "REFERENCES") ||
			strings.Contains(line, "PRIMARY KEY") ||
			strings.HasPrefix(fields[1], "TIMESTAMP") {
			continue
		}
		cols = append(cols, fields[0])
	}
	sort.Strings(cols)
	return cols
}

func TestSchemasMatchMigrations(t *testing.T) {
	names, err := database.MigrationNames()
	require.NoError(t, err)
	var ddl strings.Builder
	for _, n := range names {
		sql, err := database.ReadMigration(n)
		require.NoError(t, err)
		ddl.WriteString(sql)
		ddl.WriteString("\n")
	}

	for _, s := range Schemas {
		declared := append([]string{}, s.Derived...)
		for _, c := range s.Required {
			declared = append(declared, c.Name)
		}
		sort.Strings(declared)
		require.Equal(t, requiredColumns(t, ddl.String(), s.Table), declared, "schema for %s drifted from migrations", s.Table)
	}
}

func TestRequiredFields(t *testing.T) {
	require.Equal(t, []string{"effectiveDate", "jobCode", "jobName"}, JobSchema.RequiredFields().Names())
}
