package db

import "strings"

// JoinList stores a string list in a single text column. Commas inside an item
// become spaces and runs of whitespace collapse to one.
func JoinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.Join(strings.Fields(strings.ReplaceAll(it, ",", " ")), " ")
		if it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, ",")
}

// SplitList is the inverse of JoinList. An empty column yields an empty, non-nil list.
func SplitList(s string) []string {
	out := []string{}
	for _, it := range strings.Split(s, ",") {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// Date returns the YYYY-MM-DD prefix of a timestamp column, whichever way the
// driver rendered it.
func Date(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}
