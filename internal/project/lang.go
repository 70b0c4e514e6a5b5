package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"lua-exporter/schema"
)

// LoadLangFile reads a lang file in the given text encoding. An empty
// encoding means UTF-8.
func LoadLangFile(path, encoding string) (schema.LangMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lang file %s: %w", path, err)
	}
	defer f.Close()

	lang, err := ParseLang(f, encoding)
	if err != nil {
		return nil, fmt.Errorf("lang file %s: %w", path, err)
	}

	return lang, nil
}

// ParseLang reads "key=value" lines. Keys are trimmed, values are kept
// verbatim after the first '='. Blank lines and lines starting with '#'
// are skipped. A key defined twice is an error.
func ParseLang(r io.Reader, encoding string) (schema.LangMap, error) {
	if encoding != "" && !strings.EqualFold(encoding, "utf-8") && !strings.EqualFold(encoding, "utf8") {
		enc, err := htmlindex.Get(encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
		}

		r = transform.NewReader(r, enc.NewDecoder())
	}

	lang := schema.LangMap{}
	lines := map[string]int{}

	sc := bufio.NewScanner(r)

	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value", n)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", n)
		}

		if prev, dup := lines[key]; dup {
			return nil, fmt.Errorf("line %d: key %q already defined on line %d", n, key, prev)
		}

		lines[key] = n
		lang[key] = value
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lang data: %w", err)
	}

	return lang, nil
}
