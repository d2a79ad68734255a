package order

import (
	"fmt"
	"strings"
	"time"
)

// NoteTimeLayout is the timestamp layout used when notes are rendered as text.
const NoteTimeLayout = "2006-01-02 15:04:05"

// Well-known note authors for entries written without a human operator.
const (
	AuthorSystem         = "system"
	AuthorPaymentGateway = "payment-gateway"
)

// Note is one entry of an order's audit trail.
type Note struct {
	at     time.Time
	author string
	text   string
}

// lineBreaks keeps each note on one line of the rendered trail.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// NewNote creates a note. Line breaks in text are replaced with spaces; blank
// text is rejected by the commands that accept notes from operators.
func NewNote(at time.Time, author, text string) Note {
	return Note{
		at:     at.UTC(),
		author: author,
		text:   lineBreaks.Replace(text),
	}
}

// At returns when the note was written, in UTC.
func (n Note) At() time.Time {
	return n.at
}

// Author returns who wrote the note.
func (n Note) Author() string {
	return n.author
}

// Text returns the note body.
func (n Note) Text() string {
	return n.text
}

// String renders the note as "[2006-01-02 15:04:05] text".
func (n Note) String() string {
	return fmt.Sprintf("[%s] %s", n.at.Format(NoteTimeLayout), n.text)
}

// FormatNotes renders notes newline-separated, oldest first.
func FormatNotes(notes []Note) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, n.String())
	}
	return strings.Join(lines, "\n")
}
