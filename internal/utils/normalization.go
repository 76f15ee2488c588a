package utils

import "strings"

// NormalizeText folds a message body into the key used for repeat counting:
// lowercased with runs of whitespace collapsed to single spaces.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
