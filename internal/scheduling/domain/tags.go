package domain

import "strings"

// Category tags (work types, job-cost types) travel as ordered string
// slices and are stored as a single comma-joined column.

// EncodeTags joins tags in input order, dropping empty entries. An empty
// slice encodes to "".
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}

// DecodeTags splits a stored column back into a slice. Unknown or stale
// tokens come back as-is; vocabulary checking is the client's problem.
func DecodeTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// DisplayTags renders an encoded column for human-facing output:
// comma+space separated, underscores to spaces, title-cased.
func DisplayTags(encoded string) string {
	tags := DecodeTags(encoded)
	if len(tags) == 0 {
		return "Not specified"
	}
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = titleCase(strings.ReplaceAll(t, "_", " "))
	}
	return strings.Join(out, ", ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
