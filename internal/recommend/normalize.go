package recommend

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model output arrives wrapped in prose, markdown fences and smart
// quotes. ExtractJSON applies ordered recovery passes until one yields
// a value encoding/json accepts.
var (
	fencedRe        = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyRe       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_-]*)\s*:`)
	singleQuotedRe  = regexp.MustCompile(`'([^']*)'`)

	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`,
		"‘", "'", "’", "'",
	)
)

// ExtractJSON recovers a parseable JSON value from unstructured model
// text. Passes, in order: fenced code blocks, fence stripping, bracket
// slicing, quote/whitespace/trailing-comma cleanup, then a repair pass
// that quotes bare property names and rewrites single-quoted strings.
// If everything fails it returns MalformedModelOutputError carrying the
// raw text.
func ExtractJSON(text string) (json.RawMessage, error) {
	var candidates []string

	for _, m := range fencedRe.FindAllStringSubmatch(text, -1) {
		if strings.ContainsAny(m[1], "[{") {
			candidates = append(candidates, m[1])
		}
	}
	candidates = append(candidates, strings.ReplaceAll(text, "`", ""))

	for _, c := range candidates {
		sliced, ok := sliceBrackets(c)
		if !ok {
			continue
		}
		cleaned := cleanup(sliced)
		if json.Valid([]byte(cleaned)) {
			return json.RawMessage(cleaned), nil
		}
		repaired := repair(cleaned)
		if json.Valid([]byte(repaired)) {
			return json.RawMessage(repaired), nil
		}
	}

	// Last resort: any bracket-delimited substring of the raw text.
	if sub, ok := sliceBrackets(text); ok && json.Valid([]byte(sub)) {
		return json.RawMessage(sub), nil
	}

	return nil, &MalformedModelOutputError{Raw: text}
}

// Decode unmarshals model output into v: strict parse first, recovery
// passes only when that fails. Model output is never trusted without a
// successful decode into the expected shape.
func Decode(text string, v any) error {
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		if err := json.Unmarshal([]byte(trimmed), v); err != nil {
			return &MalformedModelOutputError{Raw: text}
		}
		return nil
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &MalformedModelOutputError{Raw: text}
	}
	return nil
}

// sliceBrackets cuts the span from the first opening bracket to the
// last closer of the same kind.
func sliceBrackets(s string) (string, bool) {
	objIdx := strings.Index(s, "{")
	arrIdx := strings.Index(s, "[")

	start, closer := objIdx, "}"
	if objIdx == -1 || (arrIdx != -1 && arrIdx < objIdx) {
		start, closer = arrIdx, "]"
	}
	if start == -1 {
		return "", false
	}

	end := strings.LastIndex(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func cleanup(s string) string {
	s = smartQuotes.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

func repair(s string) string {
	s = bareKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = singleQuotedRe.ReplaceAllString(s, `"$1"`)
	return s
}
