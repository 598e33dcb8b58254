package buffer

import "strings"

// IndentUnit is inserted or removed by one indent or outdent step.
const IndentUnit = "  "

// Result is the outcome of an edit: the new text and the new selection.
type Result struct {
	Text      string
	Selection Range
}

// Indent prefixes every line touched by sel with IndentUnit. The line holding
// sel.Start is always indented, even for a collapsed selection.
func Indent(text string, sel Range) (Result, error) {
	return eachSelectedLine("indent", text, sel, func(line string) string {
		return IndentUnit + line
	})
}

// Outdent removes one level of indentation from every line touched by sel.
// Lines without leading whitespace are left alone.
func Outdent(text string, sel Range) (Result, error) {
	return eachSelectedLine("outdent", text, sel, outdentLine)
}

func outdentLine(line string) string {
	switch {
	case strings.HasPrefix(line, IndentUnit):
		return line[len(IndentUnit):]
	case strings.HasPrefix(line, "\t"):
		return line[1:]
	case strings.HasPrefix(line, " \t"):
		// Keeps the tab's column when a single space precedes it.
		return "   " + line[2:]
	default:
		return line
	}
}

func eachSelectedLine(op, text string, sel Range, fn func(string) string) (Result, error) {
	runes := []rune(text)
	sel = NewRange(sel.Start, sel.End)
	if err := checkRange(op, sel, len(runes)); err != nil {
		return Result{}, err
	}

	line := lineAt(runes, sel.Start)
	for {
		old := line.Text()
		if next := fn(old); next != old {
			line, sel = line.Replace(next, sel)
		}

		next, ok := line.Next()
		if !ok || !next.IntersectsSelection(sel) {
			break
		}
		line = next
	}
	return Result{Text: string(line.Runes()), Selection: sel}, nil
}

// Newline replaces sel with a line break followed by the indentation of the
// line holding sel.Start, tabs rewritten as IndentUnit. The caret lands
// after the inserted indentation.
func Newline(text string, sel Range) (Result, error) {
	runes := []rune(text)
	sel = NewRange(sel.Start, sel.End)
	if err := checkRange("newline", sel, len(runes)); err != nil {
		return Result{}, err
	}

	indent := lineAt(runes, sel.Start).Indentation()
	repl := []rune("\n" + strings.ReplaceAll(indent, "\t", IndentUnit))

	out := make([]rune, 0, len(runes)-sel.Len()+len(repl))
	out = append(out, runes[:sel.Start]...)
	out = append(out, repl...)
	out = append(out, runes[sel.End:]...)

	return Result{Text: string(out), Selection: Caret(sel.Start + len(repl))}, nil
}
