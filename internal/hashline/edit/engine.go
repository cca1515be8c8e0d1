package edit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lispmeister/hashline/internal/hashline/anchor"
	"github.com/lispmeister/hashline/internal/hashline/hash"
	"github.com/lispmeister/hashline/internal/hashline/heuristics"
	"github.com/lispmeister/hashline/internal/hashline/mismatch"
)

type refKind int

const (
	kindSingle refKind = iota
	kindRange
	kindInsert
)

// parsedEdit is Phase A's output: a validated shape, still carrying the
// anchors' as-submitted line numbers and expected hashes.
type parsedEdit struct {
	originalIndex int
	kind          refKind
	startLine     int
	endLine       int // == startLine for kindSingle/kindInsert
	startHash     string
	endHash       string // unused for kindSingle/kindInsert
	dstLines      []string
}

func splitDst(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, "\n")
}

// Apply runs the full Phase A-G pipeline over content against edits,
// returning the spliced content, or a *mismatch.Error if any anchor is
// stale and unrecoverable, or a *ParseError / *BoundsError for malformed
// input. No partial application ever occurs: either every edit lands or
// none does.
func Apply(content string, edits []Edit) (*Result, error) {
	origLines := strings.Split(content, "\n")

	// Phase A: parse.
	parsed := make([]parsedEdit, 0, len(edits))
	for i, e := range edits {
		pe, err := parseOne(i, e)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pe)
	}

	// Phase B: unique-hash index over the current file.
	unique := buildUniqueIndex(origLines)

	// Phase C: validate bounds, then validate/relocate hashes.
	if err := validateBounds(parsed, len(origLines)); err != nil {
		return nil, err
	}
	mismatches, relocated := relocate(parsed, origLines, unique)
	if len(mismatches) > 0 {
		return nil, &mismatch.Error{Mismatches: mismatches, FileLines: origLines}
	}
	parsed = relocated

	// InsertAfter with an empty body promotes to a single blank line.
	for i := range parsed {
		if parsed[i].kind == kindInsert && len(parsed[i].dstLines) == 0 {
			parsed[i].dstLines = []string{""}
		}
	}

	// Phase D: dedupe, keeping the first occurrence in original order.
	parsed = dedupe(parsed)

	touched := map[int]bool{}
	for _, pe := range parsed {
		switch pe.kind {
		case kindRange:
			for ln := pe.startLine; ln <= pe.endLine; ln++ {
				touched[ln] = true
			}
		default:
			touched[pe.startLine] = true
		}
	}

	// Phase E: sort bottom-up — descending effective line, Single/Range
	// before InsertAfter at a tie, then original input order.
	sortBottomUp(parsed)

	// Phase F: splice.
	out := append([]string(nil), origLines...)
	groups := map[int]*group{}
	var noops []NoopEdit
	var firstChanged *int

	for _, pe := range parsed {
		switch pe.kind {
		case kindSingle:
			spliceSingle(pe, origLines, &out, groups, touched, &noops, &firstChanged)
		case kindRange:
			spliceRange(pe, origLines, &out, groups, &noops, &firstChanged)
		case kindInsert:
			spliceInsert(pe, origLines, &out, groups, &firstChanged)
		}
	}

	finalContent := strings.Join(out, "\n")

	// Phase G: warnings.
	warnings := buildWarnings(origLines, out, len(parsed))

	return &Result{
		Content:          finalContent,
		FirstChangedLine: firstChanged,
		Warnings:         warnings,
		NoopEdits:        noops,
	}, nil
}

func parseOne(index int, e Edit) (parsedEdit, error) {
	switch {
	case e.SetLine != nil:
		ref, err := anchor.Parse(e.SetLine.Anchor)
		if err != nil {
			return parsedEdit{}, &ParseError{Index: index, Err: err}
		}
		dst := heuristics.StripNewLinePrefixes(splitDst(e.SetLine.NewText))
		return parsedEdit{
			originalIndex: index,
			kind:          kindSingle,
			startLine:     ref.Line,
			endLine:       ref.Line,
			startHash:     ref.Hash,
			dstLines:      dst,
		}, nil

	case e.ReplaceLines != nil:
		startRef, err := anchor.Parse(e.ReplaceLines.StartAnchor)
		if err != nil {
			return parsedEdit{}, &ParseError{Index: index, Err: err}
		}
		dst := heuristics.StripNewLinePrefixes(splitDst(e.ReplaceLines.NewText))
		if e.ReplaceLines.EndAnchor == "" {
			return parsedEdit{
				originalIndex: index,
				kind:          kindSingle,
				startLine:     startRef.Line,
				endLine:       startRef.Line,
				startHash:     startRef.Hash,
				dstLines:      dst,
			}, nil
		}
		endRef, err := anchor.Parse(e.ReplaceLines.EndAnchor)
		if err != nil {
			return parsedEdit{}, &ParseError{Index: index, Err: err}
		}
		if endRef.Line == startRef.Line {
			return parsedEdit{
				originalIndex: index,
				kind:          kindSingle,
				startLine:     startRef.Line,
				endLine:       startRef.Line,
				startHash:     startRef.Hash,
				dstLines:      dst,
			}, nil
		}
		return parsedEdit{
			originalIndex: index,
			kind:          kindRange,
			startLine:     startRef.Line,
			endLine:       endRef.Line,
			startHash:     startRef.Hash,
			endHash:       endRef.Hash,
			dstLines:      dst,
		}, nil

	case e.InsertAfter != nil:
		ref, err := anchor.Parse(e.InsertAfter.Anchor)
		if err != nil {
			return parsedEdit{}, &ParseError{Index: index, Err: err}
		}
		dst := heuristics.StripNewLinePrefixes(splitDst(e.InsertAfter.Text))
		return parsedEdit{
			originalIndex: index,
			kind:          kindInsert,
			startLine:     ref.Line,
			endLine:       ref.Line,
			startHash:     ref.Hash,
			dstLines:      dst,
		}, nil

	default:
		return parsedEdit{}, &ParseError{Index: index, Err: fmt.Errorf("edit has no recognized shape")}
	}
}

func buildUniqueIndex(lines []string) map[string]int {
	counts := map[string]int{}
	firstLine := map[string]int{}
	for i, l := range lines {
		h := hash.Line(i, l)
		counts[h]++
		if counts[h] == 1 {
			firstLine[h] = i + 1
		}
	}
	unique := make(map[string]int, len(firstLine))
	for h, c := range counts {
		if c == 1 {
			unique[h] = firstLine[h]
		}
	}
	return unique
}

func validateBounds(parsed []parsedEdit, n int) error {
	for _, pe := range parsed {
		if pe.startLine < 1 || pe.startLine > n {
			return &BoundsError{Index: pe.originalIndex, Msg: fmt.Sprintf("line %d is out of range (file has %d lines)", pe.startLine, n)}
		}
		if pe.kind == kindRange {
			if pe.endLine < 1 || pe.endLine > n {
				return &BoundsError{Index: pe.originalIndex, Msg: fmt.Sprintf("line %d is out of range (file has %d lines)", pe.endLine, n)}
			}
			if pe.startLine > pe.endLine {
				return &BoundsError{Index: pe.originalIndex, Msg: fmt.Sprintf("invalid range: start (%d) > end (%d)", pe.startLine, pe.endLine)}
			}
		}
	}
	return nil
}

func relocate(parsed []parsedEdit, origLines []string, unique map[string]int) ([]mismatch.Mismatch, []parsedEdit) {
	var mismatches []mismatch.Mismatch
	out := make([]parsedEdit, len(parsed))

	for i, pe := range parsed {
		switch pe.kind {
		case kindSingle, kindInsert:
			actual := hash.Line(pe.startLine-1, origLines[pe.startLine-1])
			if actual == pe.startHash {
				out[i] = pe
				continue
			}
			if newLine, ok := unique[pe.startHash]; ok {
				pe.startLine = newLine
				pe.endLine = newLine
				out[i] = pe
				continue
			}
			mismatches = append(mismatches, mismatch.Mismatch{Line: pe.startLine, Expected: pe.startHash, Actual: actual})
			out[i] = pe

		case kindRange:
			startActual := hash.Line(pe.startLine-1, origLines[pe.startLine-1])
			endActual := hash.Line(pe.endLine-1, origLines[pe.endLine-1])
			startOK := startActual == pe.startHash
			endOK := endActual == pe.endHash

			newStart, startRelocatable := unique[pe.startHash]
			newEnd, endRelocatable := unique[pe.endHash]

			switch {
			case startOK && endOK:
				out[i] = pe

			case !startOK && endOK && startRelocatable:
				pe.startLine = newStart
				out[i] = pe

			case startOK && !endOK && endRelocatable:
				pe.endLine = newEnd
				out[i] = pe

			case !startOK && !endOK && startRelocatable && endRelocatable:
				if newStart <= newEnd && (newEnd-newStart) == (pe.endLine-pe.startLine) {
					pe.startLine = newStart
					pe.endLine = newEnd
					out[i] = pe
				} else {
					// Relocation would change the shape of the range; reject
					// both ends and report against their original positions.
					mismatches = append(mismatches,
						mismatch.Mismatch{Line: pe.startLine, Expected: pe.startHash, Actual: startActual},
						mismatch.Mismatch{Line: pe.endLine, Expected: pe.endHash, Actual: endActual},
					)
					out[i] = pe
				}

			default:
				if !startOK {
					mismatches = append(mismatches, mismatch.Mismatch{Line: pe.startLine, Expected: pe.startHash, Actual: startActual})
				}
				if !endOK {
					mismatches = append(mismatches, mismatch.Mismatch{Line: pe.endLine, Expected: pe.endHash, Actual: endActual})
				}
				out[i] = pe
			}
		}
	}

	return mismatches, out
}

func dedupe(parsed []parsedEdit) []parsedEdit {
	seen := map[string]bool{}
	out := make([]parsedEdit, 0, len(parsed))
	for _, pe := range parsed {
		key := dedupeKey(pe)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, pe)
	}
	return out
}

func dedupeKey(pe parsedEdit) string {
	var kindChar, rangeStr string
	switch pe.kind {
	case kindSingle:
		kindChar, rangeStr = "s", strconv.Itoa(pe.startLine)
	case kindRange:
		kindChar, rangeStr = "r", strconv.Itoa(pe.startLine)+"-"+strconv.Itoa(pe.endLine)
	case kindInsert:
		kindChar, rangeStr = "i", strconv.Itoa(pe.startLine)
	}
	return kindChar + ":" + rangeStr + "|" + strings.Join(pe.dstLines, "\n")
}

func effectiveLine(pe parsedEdit) int {
	if pe.kind == kindRange {
		return pe.endLine
	}
	return pe.startLine
}

func secondaryKey(pe parsedEdit) int {
	if pe.kind == kindInsert {
		return 1
	}
	return 0
}

func sortBottomUp(parsed []parsedEdit) {
	// Stable insertion sort: the batches here are small (an agent's single
	// tool call), and stability on original index matters more than
	// asymptotic complexity.
	for i := 1; i < len(parsed); i++ {
		for j := i; j > 0 && less(parsed[j], parsed[j-1]); j-- {
			parsed[j], parsed[j-1] = parsed[j-1], parsed[j]
		}
	}
}

// less reports whether a must be processed (appear in the sorted slice)
// before b.
func less(a, b parsedEdit) bool {
	la, lb := effectiveLine(a), effectiveLine(b)
	if la != lb {
		return la > lb
	}
	sa, sb := secondaryKey(a), secondaryKey(b)
	if sa != sb {
		return sa < sb
	}
	return a.originalIndex < b.originalIndex
}

// group tracks the current [start,end) span in `out` that corresponds to
// an original effective line, so that multiple edits tied on that line
// (an InsertAfter following a Single/Range splice, or duplicate
// non-deduped edits) compose instead of clobbering each other's indices.
type group struct {
	start, end int
}

func getGroup(groups map[int]*group, key, defaultStart, defaultEnd int) *group {
	g, ok := groups[key]
	if !ok {
		g = &group{start: defaultStart, end: defaultEnd}
		groups[key] = g
	}
	return g
}

func spliceSingle(pe parsedEdit, origLines []string, out *[]string, groups map[int]*group, touched map[int]bool, noops *[]NoopEdit, firstChanged **int) {
	orig := origLines[pe.startLine-1]

	if exp, ok := heuristics.MaybeExpandSingleLineMerge(pe.startLine, pe.dstLines, origLines, touched); ok {
		mergeGroup := getGroup(groups, exp.Start, exp.Start-1, exp.Start-1+exp.Length)
		apply(out, mergeGroup, exp.Replacement)
		recordFirstChanged(firstChanged, exp.Start)
		return
	}

	g := getGroup(groups, pe.startLine, pe.startLine-1, pe.startLine)

	d := heuristics.StripRangeBoundaryEcho(origLines, pe.startLine, pe.startLine, pe.dstLines)
	d = heuristics.RestoreOldWrappedLines(origLines, d)
	d = heuristics.RestoreIndentForPairedReplacement([]string{orig}, d)

	final := strings.Join(d, "\n")
	if final == orig && heuristics.HasConfusableHyphens(orig) {
		d2 := heuristics.NormalizeConfusableHyphensInLines(d)
		if f2 := strings.Join(d2, "\n"); f2 != orig {
			d, final = d2, f2
		}
	}

	if final == orig {
		*noops = append(*noops, NoopEdit{OriginalIndex: pe.originalIndex, Description: fmt.Sprintf("edit at line %d produced no textual change", pe.startLine)})
		return
	}

	apply(out, g, d)
	recordFirstChanged(firstChanged, pe.startLine)
}

func spliceRange(pe parsedEdit, origLines []string, out *[]string, groups map[int]*group, noops *[]NoopEdit, firstChanged **int) {
	g := getGroup(groups, pe.endLine, pe.startLine-1, pe.endLine)

	d := heuristics.StripRangeBoundaryEcho(origLines, pe.startLine, pe.endLine, pe.dstLines)

	origSpan := origLines[pe.startLine-1 : pe.endLine]
	d = heuristics.RestoreOldWrappedLines(origSpan, d)
	d = heuristics.RestoreIndentForPairedReplacement(origSpan, d)

	origJoined := strings.Join(origSpan, "\n")
	finalJoined := strings.Join(d, "\n")
	if finalJoined == origJoined && heuristics.HasConfusableHyphens(origJoined) {
		d2 := heuristics.NormalizeConfusableHyphensInLines(d)
		if f2 := strings.Join(d2, "\n"); f2 != origJoined {
			d, finalJoined = d2, f2
		}
	}

	if finalJoined == origJoined {
		*noops = append(*noops, NoopEdit{OriginalIndex: pe.originalIndex, Description: fmt.Sprintf("edit over lines %d-%d produced no textual change", pe.startLine, pe.endLine)})
		return
	}

	apply(out, g, d)
	recordFirstChanged(firstChanged, pe.startLine)
}

func spliceInsert(pe parsedEdit, origLines []string, out *[]string, groups map[int]*group, firstChanged **int) {
	g := getGroup(groups, pe.startLine, pe.startLine-1, pe.startLine)
	d := heuristics.StripInsertAnchorEchoAfter(origLines[pe.startLine-1], pe.dstLines)

	insertAt := g.end
	tail := append([]string{}, (*out)[insertAt:]...)
	tail = append(d, tail...)
	*out = append((*out)[:insertAt], tail...)
	g.end = insertAt + len(d)

	recordFirstChanged(firstChanged, pe.startLine+1)
}

func apply(out *[]string, g *group, d []string) {
	tail := append([]string{}, (*out)[g.end:]...)
	tail = append(d, tail...)
	*out = append((*out)[:g.start], tail...)
	g.end = g.start + len(d)
}

func recordFirstChanged(firstChanged **int, candidate int) {
	if *firstChanged == nil || candidate < **firstChanged {
		v := candidate
		*firstChanged = &v
	}
}

func buildWarnings(origLines, out []string, editsCount int) []string {
	diffLines := abs(len(out) - len(origLines))
	n := len(origLines)
	if len(out) < n {
		n = len(out)
	}
	for i := 0; i < n; i++ {
		if origLines[i] != out[i] {
			diffLines++
		}
	}

	var warnings []string
	if editsCount > 0 && diffLines > 4*editsCount {
		warnings = append(warnings, fmt.Sprintf("Edit changed %d lines across %d operations — verify no unintended reformatting.", diffLines, editsCount))
	}
	return warnings
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
