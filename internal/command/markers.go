package command

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"fintrack/internal/core"
)

const (
	amountMarker   = "$/"
	categoryMarker = "c/"
	dateMarker     = "d/"
)

var multipleMarkerErr = map[string]error{
	amountMarker:   core.ErrMultipleAmountMarkers,
	categoryMarker: core.ErrMultipleCategoryMarkers,
	dateMarker:     core.ErrMultipleDateMarkers,
}

// markerPositions returns every offset of m in s. c/ and d/ only count at the
// start of a whitespace-separated token so words like "abc/def" stay intact;
// $/ is recognised anywhere.
func markerPositions(s, m string) []int {
	var out []int
	for i := 0; i+len(m) <= len(s); i++ {
		if s[i:i+len(m)] != m {
			continue
		}
		if m != amountMarker && i > 0 && !isSpace(s[i-1]) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func isSpace(b byte) bool {
	return unicode.IsSpace(rune(b))
}

type field struct {
	marker string
	start  int // offset of the marker itself
}

// fields splits s on the given markers. lead is the text before the first
// marker, values maps each present marker to its trimmed value, and order
// lists the markers in the order they appear.
type fields struct {
	lead   string
	values map[string]string
	order  []string
}

func (f fields) has(m string) bool {
	_, ok := f.values[m]
	return ok
}

// splitFields locates each allowed marker in s and fails if any appears twice.
func splitFields(s string, allowed ...string) (fields, error) {
	var found []field
	for _, m := range allowed {
		pos := markerPositions(s, m)
		if len(pos) > 1 {
			return fields{}, multipleMarkerErr[m]
		}
		if len(pos) == 1 {
			found = append(found, field{marker: m, start: pos[0]})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })

	out := fields{values: make(map[string]string, len(found))}
	if len(found) == 0 {
		out.lead = strings.TrimSpace(s)
		return out, nil
	}
	out.lead = strings.TrimSpace(s[:found[0].start])
	for i, f := range found {
		end := len(s)
		if i+1 < len(found) {
			end = found[i+1].start
		}
		out.values[f.marker] = strings.TrimSpace(s[f.start+len(f.marker) : end])
		out.order = append(out.order, f.marker)
	}
	return out, nil
}

// inOrder reports whether the present markers appear in the given order.
func (f fields) inOrder(want ...string) bool {
	rank := make(map[string]int, len(want))
	for i, m := range want {
		rank[m] = i
	}
	for i := 1; i < len(f.order); i++ {
		if rank[f.order[i-1]] > rank[f.order[i]] {
			return false
		}
	}
	return true
}

// unknownMarkers returns tokens of s that look like a marker (a letter followed
// by '/') but are not one of the allowed markers.
func unknownMarkers(s string, allowed ...string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if len(tok) < 2 || tok[1] != '/' || !unicode.IsLetter(rune(tok[0])) {
			continue
		}
		known := false
		for _, m := range allowed {
			if strings.HasPrefix(tok, m) {
				known = true
				break
			}
		}
		if !known {
			out = append(out, tok[:2])
		}
	}
	return out
}

func checkUnknownMarkers(s string, allowed ...string) error {
	if bad := unknownMarkers(s, allowed...); len(bad) > 0 {
		return fmt.Errorf("%w: %s", core.ErrUnknownMarker, strings.Join(bad, ", "))
	}
	return nil
}
