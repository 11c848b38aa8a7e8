package settle

// Dedupe collapses accidental duplicate occurrences sharing the same
// date+name+direction signature. The list is scanned last-to-first and any
// occurrence whose signature was already seen is dropped, so which duplicate
// survives is an artifact of expansion order. Runs before the final sort.
func Dedupe(occs []Occurrence) []Occurrence {
	seen := make(map[string]struct{}, len(occs))
	keep := make([]bool, len(occs))
	for i := len(occs) - 1; i >= 0; i-- {
		sig := ISO(occs[i].Date) + "_" + occs[i].Name + "_" + string(occs[i].Direction)
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		keep[i] = true
	}

	out := occs[:0]
	for i, o := range occs {
		if keep[i] {
			out = append(out, o)
		}
	}
	return out
}
