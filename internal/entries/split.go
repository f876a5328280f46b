package entries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Bucket names, also the output file stems.
const (
	BucketRequiredReading = "required-reading"
	BucketLAAdditions     = "la-additions"
	BucketLabs            = "labs"
	BucketOther           = "other"
)

// BucketOrder is the order buckets are written and reported in.
var BucketOrder = []string{BucketRequiredReading, BucketLAAdditions, BucketLabs, BucketOther}

// ErrNotArray is returned when the entries file is not a JSON array.
var ErrNotArray = errors.New("expected JSON array of entries")

// Buckets holds the split entries. Entries are kept as generic objects so
// fields added by hand survive the split.
type Buckets map[string][]map[string]any

var (
	commentStart   = regexp.MustCompile(`^\s*//\s*\{`)
	commentEnd     = regexp.MustCompile(`^\s*//\s*\}`)
	commentedLine  = regexp.MustCompile(`^(\s*)//\s?(.*)$`)
	commentedMarks = "_commented"
)

// Split parses the hand-edited entries file (JSON with // comments) and
// buckets every entry by type. Entry objects that were commented out as a
// whole are recovered and always land in "other".
func Split(raw []byte) (Buckets, error) {
	commented, rest := extractCommentedBlocks(string(raw))
	cleaned := stripAllComments(rest)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("json parse error: %w", err)
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	buckets := Buckets{}
	for _, name := range BucketOrder {
		buckets[name] = []map[string]any{}
	}

	for _, item := range list {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		wasCommented, _ := e[commentedMarks].(bool)
		delete(e, commentedMarks)
		name := bucketFor(e, wasCommented)
		buckets[name] = append(buckets[name], e)
	}
	for _, e := range commented {
		buckets[BucketOther] = append(buckets[BucketOther], e)
	}

	return buckets, nil
}

func bucketFor(e map[string]any, commented bool) string {
	if commented {
		return BucketOther
	}
	t, _ := e["type"].(string)
	t = strings.TrimSpace(t)
	switch {
	case t == "Required Reading":
		return BucketRequiredReading
	case t == "Optional LA Addition":
		return BucketLAAdditions
	case strings.Contains(strings.ToLower(t), "lab"):
		return BucketLabs
	default:
		return BucketOther
	}
}

// extractCommentedBlocks removes "// {" ... "// }" blocks from text and
// returns the objects they decode to. Blocks that do not decode are dropped.
func extractCommentedBlocks(text string) ([]map[string]any, string) {
	lines := strings.Split(text, "\n")

	var (
		found []map[string]any
		kept  []string
	)
	for i := 0; i < len(lines); {
		if !commentStart.MatchString(lines[i]) {
			kept = append(kept, lines[i])
			i++
			continue
		}

		block := []string{lines[i]}
		i++
		for i < len(lines) {
			block = append(block, lines[i])
			end := commentEnd.MatchString(lines[i])
			i++
			if end {
				break
			}
		}

		uncommented := make([]string, len(block))
		for k, line := range block {
			m := commentedLine.FindStringSubmatch(line)
			if m == nil {
				uncommented[k] = line
				continue
			}
			part := strings.TrimRight(m[2], " \t\r")
			if k == len(block)-1 {
				part = strings.TrimSuffix(part, ",")
			}
			uncommented[k] = m[1] + part
		}

		dec := json.NewDecoder(strings.NewReader(strings.Join(uncommented, "\n")))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err == nil && obj != nil {
			found = append(found, obj)
		}
	}

	return found, strings.Join(kept, "\n")
}

// stripAllComments uncomments whole-line comments and drops trailing //
// comments that sit outside string literals.
func stripAllComments(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			if m := commentedLine.FindStringSubmatch(line); m != nil {
				out = append(out, m[1]+m[2])
			}
			continue
		}
		out = append(out, stripInlineComment(line))
	}
	return strings.Join(out, "\n")
}

func stripInlineComment(line string) string {
	var (
		b        bytes.Buffer
		inString bool
		escape   bool
		quote    byte
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escape:
			escape = false
		case c == '\\' && inString:
			escape = true
		case !inString && (c == '"' || c == '\''):
			inString = true
			quote = c
		case inString && c == quote:
			inString = false
		case !inString && c == '/' && i+1 < len(line) && line[i+1] == '/':
			return b.String()
		}
		b.WriteByte(c)
	}
	return b.String()
}

// WriteBuckets writes one <bucket>.json file per bucket into dir and returns
// the entry count of each, in BucketOrder.
func WriteBuckets(dir string, b Buckets) ([]int, error) {
	counts := make([]int, 0, len(BucketOrder))
	for _, name := range BucketOrder {
		list := b[name]
		if list == nil {
			list = []map[string]any{}
		}
		if err := WriteFile(filepath.Join(dir, name+".json"), list); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		counts = append(counts, len(list))
	}
	return counts, nil
}
