package parser

import "fmt"

// Source is the shared text buffer for one template file. Every Span and
// Token produced from a parse points into the same Source, so an in-place
// edit is visible to all of them.
type Source struct {
	File    string
	Content []byte
}

func NewSource(file, content string) *Source {
	return &Source{File: file, Content: []byte(content)}
}

func (s *Source) Text() string {
	return string(s.Content)
}

// Span is a half-open byte range [Start, End) into a Source.
type Span struct {
	src   *Source
	Start int
	End   int
}

func NewSpan(src *Source, start, end int) *Span {
	return &Span{src: src, Start: start, End: end}
}

func (s *Span) Length() int {
	return s.End - s.Start
}

func (s *Span) Text() string {
	return string(s.src.Content[s.Start:s.End])
}

func (s *Span) Clone() *Span {
	return &Span{src: s.src, Start: s.Start, End: s.End}
}

// Shift moves both boundaries by delta.
func (s *Span) Shift(delta int) {
	s.Start += delta
	s.End += delta
}

func (s *Span) ShiftStart(delta int) {
	s.Start += delta
}

func (s *Span) ShiftEnd(delta int) {
	s.End += delta
}

// ReplaceText splices text into the shared buffer in place of this span's
// current text and re-lengths the span to cover it. Spans after this one are
// stale until their owner shifts them; Document.ShiftTokensAfter does that
// for the token sequence.
func (s *Span) ReplaceText(text string) {
	content := s.src.Content
	updated := make([]byte, 0, len(content)-s.Length()+len(text))
	updated = append(updated, content[:s.Start]...)
	updated = append(updated, text...)
	updated = append(updated, content[s.End:]...)
	s.src.Content = updated
	s.End = s.Start + len(text)
}

func (s *Span) String() string {
	if s.src != nil && s.src.File != "" {
		return fmt.Sprintf("%s@%d..%d", s.src.File, s.Start, s.End)
	}
	return fmt.Sprintf("@%d..%d", s.Start, s.End)
}
