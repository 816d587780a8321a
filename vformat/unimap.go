package vformat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	vfa "github.com/consoleet/consoleet-utils"
)

// LoadUnimap parses the unicode-map text format (spec §4.6): lines
// are `<index>[-<index>] <mapping>`, where `<mapping>` is either
// `idem` (do nothing: the indices keep their identity mapping) or a
// whitespace-delimited sequence of `U+hhhh` codepoints all attached
// to the same index. Ranged left-hand sides (`<index>-<index>`) are
// only valid when the mapping is `idem`. `#` starts a comment that
// runs to end of line; blank lines are skipped.
func LoadUnimap(r io.Reader) (*vfa.UnicodeMap, error) {
	m := vfa.NewUnicodeMap()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &vfa.FormatError{Format: "unimap", Reason: fmt.Sprintf("line %d: expected '<index> <mapping>'", lineNo)}
		}
		lo, hi, isRange, err := parseIndexSpec(fields[0])
		if err != nil {
			return nil, &vfa.FormatError{Format: "unimap", Reason: fmt.Sprintf("line %d: %v", lineNo, err)}
		}

		if fields[1] == "idem" {
			// identity is the default for any index never added; nothing
			// to record.
			continue
		}
		if isRange {
			return nil, &vfa.FormatError{Format: "unimap", Reason: fmt.Sprintf("line %d: ranged index only valid with 'idem'", lineNo)}
		}
		for _, tok := range fields[1:] {
			cp, err := parseCodepoint(tok)
			if err != nil {
				return nil, &vfa.FormatError{Format: "unimap", Reason: fmt.Sprintf("line %d: %v", lineNo, err)}
			}
			m.AddI2U(uint32(lo), cp)
		}
		_ = hi
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseIndexSpec(spec string) (lo, hi int, isRange bool, err error) {
	parts := strings.SplitN(spec, "-", 2)
	lo, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("bad index %q", parts[0])
	}
	if len(parts) == 1 {
		return lo, lo, false, nil
	}
	hi, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false, fmt.Errorf("bad range end %q", parts[1])
	}
	return lo, hi, true, nil
}

func parseCodepoint(tok string) (rune, error) {
	if !strings.HasPrefix(tok, "U+") && !strings.HasPrefix(tok, "u+") {
		return 0, fmt.Errorf("expected U+hhhh, got %q", tok)
	}
	v, err := strconv.ParseUint(tok[2:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad codepoint %q", tok)
	}
	return rune(v), nil
}

// SaveUnimap writes m in LoadUnimap's format, one line per index that
// has an explicit codepoint set, in index order.
func SaveUnimap(w io.Writer, m *vfa.UnicodeMap) error {
	bw := bufio.NewWriter(w)
	type entry struct {
		idx uint32
		cps []rune
	}
	var entries []entry
	m.Each(func(idx uint32, cps []rune) { entries = append(entries, entry{idx, cps}) })
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].idx < entries[j-1].idx; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	for _, e := range entries {
		fmt.Fprintf(bw, "%d", e.idx)
		for _, cp := range e.cps {
			fmt.Fprintf(bw, " U+%04x", cp)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
