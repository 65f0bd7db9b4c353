// Package frontmatter reads the YAML header block (`---` delimited) at the
// start of a content file.
package frontmatter

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxHeaderBytes bounds how much of a file is read when looking for a
// header. Realistic changelog headers fit well within this.
const maxHeaderBytes = 8 * 1024

// Header is the subset of frontmatter fields this tool consumes.
type Header struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

// ErrMissingClosingDelimiter indicates the content started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the body.
//
// If the content does not start with a frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse decodes raw frontmatter (without `---` delimiters) into a Header.
// Quoting around values is handled by the YAML parser.
func Parse(frontmatter []byte) (Header, error) {
	var h Header
	if err := yaml.Unmarshal(frontmatter, &h); err != nil {
		return Header{}, err
	}
	h.Title = strings.TrimSpace(h.Title)
	h.Date = strings.TrimSpace(h.Date)
	return h, nil
}

// ReadHeader reads a bounded prefix of the file at path and extracts its
// frontmatter header. Any I/O or parse failure yields ok=false; callers
// treat such files as having no header rather than failing the run.
func ReadHeader(path string) (Header, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, false
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, maxHeaderBytes))
	if err != nil {
		return Header{}, false
	}

	fm, _, had, err := Split(content)
	if err != nil || !had {
		return Header{}, false
	}

	h, err := Parse(fm)
	if err != nil {
		return Header{}, false
	}
	return h, true
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
