// Package textbox parses the positional text protocol produced by OCR engines:
//
//	[Engine] optional header
//	[<x> <y>|<w> <h>] text up to the next marker
//
// Coordinates are integer pixels at the source (reference) resolution.
package textbox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Box is one positioned text region. Boxes are values; a parse always
// returns a fresh slice.
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
	Text   string
}

func (b Box) String() string {
	return fmt.Sprintf("[%d %d|%d %d] %q", b.X, b.Y, b.Width, b.Height, b.Text)
}

var (
	markerPattern = regexp.MustCompile(`\[(\d+)\s+(\d+)\|(\d+)\s+(\d+)\]`)
	enginePattern = regexp.MustCompile(`\[Engine\][^\n]*(\n|$)`)
)

// StripEngineHeaders removes every "[Engine]..." marker through the end of its line.
func StripEngineHeaders(s string) string {
	return enginePattern.ReplaceAllString(s, "")
}

// Parse extracts boxes in input order. Malformed markers are not recognized
// and their text is dropped; boxes with an empty body or zero area are skipped.
func Parse(raw string) []Box {
	text := StripEngineHeaders(strings.TrimSpace(raw))

	locs := markerPattern.FindAllStringSubmatchIndex(text, -1)
	boxes := make([]Box, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(StripEngineHeaders(text[loc[1]:end]))
		if body == "" {
			continue
		}

		var vals [4]int
		ok := true
		for j := range vals {
			v, err := strconv.Atoi(text[loc[2+2*j]:loc[3+2*j]])
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok || vals[2] == 0 || vals[3] == 0 {
			continue
		}

		boxes = append(boxes, Box{
			X:      vals[0],
			Y:      vals[1],
			Width:  vals[2],
			Height: vals[3],
			Text:   body,
		})
	}
	return boxes
}

// Sample is shown when no payload is given on the command line.
const Sample = `[1330 588|243 29]  Line 1
[1330 655|388 27]  Line 2
[1330 703|406 27]  Line 3`
