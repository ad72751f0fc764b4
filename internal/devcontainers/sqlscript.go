package devcontainers

import (
	"database/sql"
	"fmt"
	"strings"
)

// splitSQL breaks a script into statements, dropping -- comments outside
// quoted strings. The trailing fragment after the last semicolon is ignored.
func splitSQL(script string) []string {
	var lines []string
	for _, l := range strings.Split(script, "\n") {
		lines = append(lines, stripComment(l))
	}

	parts := strings.Split(strings.Join(lines, " "), ";")
	parts = parts[:len(parts)-1]

	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			statements = append(statements, p)
		}
	}
	return statements
}

func executeSQL(db *sql.DB, script string) error {
	for _, q := range splitSQL(script) {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}

// stripComment removes a trailing -- comment unless it sits inside quotes
func stripComment(line string) string {
	var (
		out   strings.Builder
		quote byte
	)
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '-' && i+1 < len(line) && line[i+1] == '-':
			return out.String()
		}
		out.WriteByte(ch)
	}
	return out.String()
}
