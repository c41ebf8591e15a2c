package app

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	defaultApplicationName = "fight-fantasy"
	maxTracedQueryLength   = 512
)

// postgresTarget is DB_URL resolved into what the driver and the tracer need.
type postgresTarget struct {
	DSN    string
	DBName string
}

// resolvePostgresTarget accepts only the URL form of DB_URL. Unset
// application_name and disable_prepared_binary_result get defaults.
func resolvePostgresTarget(raw string, disablePreparedBinaryResult bool) (postgresTarget, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return postgresTarget{}, fmt.Errorf("parse DB_URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return postgresTarget{}, fmt.Errorf("DB_URL must be a postgres:// url, got scheme %q", parsed.Scheme)
	}
	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return postgresTarget{}, fmt.Errorf("DB_URL is missing a database name")
	}

	query := parsed.Query()
	if query.Get("application_name") == "" {
		query.Set("application_name", defaultApplicationName)
	}
	if disablePreparedBinaryResult && query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
	}
	parsed.RawQuery = query.Encode()

	return postgresTarget{DSN: parsed.String(), DBName: dbName}, nil
}

var (
	sqlLineComment = regexp.MustCompile(`--[^\n]*`)
	sqlWhitespace  = regexp.MustCompile(`\s+`)
)

// traceQuery renders a statement as a single span attribute line. Bound
// values never appear here; only the placeholders do.
func traceQuery(query string) string {
	query = sqlLineComment.ReplaceAllString(query, " ")
	query = strings.TrimSpace(sqlWhitespace.ReplaceAllString(query, " "))
	if len(query) <= maxTracedQueryLength {
		return query
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
