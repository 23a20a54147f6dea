package catalog

import "strings"

// NormalizeTags trims every candidate tag, drops entries that are empty
// after trimming and removes duplicates keeping the first occurrence.
// The relative order of first occurrences is preserved.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
