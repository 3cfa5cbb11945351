package outline

import (
	"errors"
	"strings"
)

// BulletPrefix renders every stored line as a list item. Classified
// content never carries the marker itself; it is applied on mutation.
const BulletPrefix = "* "

// EndOfDocument is the line value meaning "after the last line".
const EndOfDocument = -1

// ErrLineOutOfRange reports a modify against a line that does not exist.
var ErrLineOutOfRange = errors.New("line number out of range")

// Document is an ordered list of bullet lines. Line references are
// 1-indexed; EndOfDocument addresses the position past the last line.
type Document struct {
	Lines []string
}

func NewDocument(lines []string) *Document {
	return &Document{Lines: lines}
}

// Append inserts content after the given 1-indexed line, or at the end
// for EndOfDocument. Out-of-range positions clamp to the end rather than
// fail, since dictated line numbers are best-effort.
func (d *Document) Append(content string, line int) {
	entry := BulletPrefix + content
	if line == EndOfDocument || line < 1 || line >= len(d.Lines)+1 {
		d.Lines = append(d.Lines, entry)
		return
	}
	d.Lines = append(d.Lines, "")
	copy(d.Lines[line+1:], d.Lines[line:])
	d.Lines[line] = entry
}

// Modify replaces the 1-indexed line. Unlike Append, a bad line number is
// a hard failure: silently rewriting the wrong line would destroy content.
func (d *Document) Modify(content string, line int) error {
	if line < 1 || line > len(d.Lines) {
		return ErrLineOutOfRange
	}
	d.Lines[line-1] = BulletPrefix + content
	return nil
}

// Render joins the document for display in a chat reply.
func (d *Document) Render() string {
	return strings.Join(d.Lines, "\n")
}

func (d *Document) Len() int {
	return len(d.Lines)
}
