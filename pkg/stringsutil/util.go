package stringsutil

import "strings"

// RemoveEmptyStrings trims every element and drops the ones left empty.
func RemoveEmptyStrings(slice []string) []string {
	var result []string

	for _, s := range slice {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}

	return result
}

// SplitList splits a comma separated env value such as "a, b,,c" into [a b c].
func SplitList(raw string) []string {
	return RemoveEmptyStrings(strings.Split(raw, ","))
}
