package config

import (
	"os"
	"strings"
)

// Issue categories are an external contract: a closed set of strings
// supplied by configuration. The service only enforces that the "other"
// category carries a description; membership is the client's concern.
var defaultIssueCategories = []string{
	"Lluvia",
	"Falta de material",
	"Falta de personal",
	"Falla de equipos",
	"Permisos y licencias",
	"Orden publico",
	"Otros",
}

const defaultOtherCategory = "Otros"

// IssueCategories returns the configured delay/incident categories,
// comma-separated in ISSUE_CATEGORIES, or the defaults.
func IssueCategories() []string {
	raw := os.Getenv("ISSUE_CATEGORIES")
	if raw == "" {
		return append([]string(nil), defaultIssueCategories...)
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultIssueCategories...)
	}
	return out
}

// ValidIssueCategory reports whether the category is in the configured set.
func ValidIssueCategory(category string) bool {
	for _, c := range IssueCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// OtherIssueCategory returns the category that requires a free-text
// description, ISSUE_CATEGORY_OTHER or the default.
func OtherIssueCategory() string {
	if v := os.Getenv("ISSUE_CATEGORY_OTHER"); v != "" {
		return v
	}
	return defaultOtherCategory
}
