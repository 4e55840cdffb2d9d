package parser

// ArgumentSplitter splits a single statement into whitespace-delimited
// argument tokens. Unlike the statement splitter it never fails: quoting,
// escapes and nested substitution or method-call parentheses keep a token
// together, and anything else is taken verbatim.
//
// This is also the splitter used to re-tokenize stored history lines when
// resolving history back-references, so its word boundaries must match
// ordinary word splitting, not statement splitting.
type ArgumentSplitter struct {
	data string
	read int
}

// NewArgumentSplitter returns a splitter over data.
func NewArgumentSplitter(data string) *ArgumentSplitter {
	return &ArgumentSplitter{data: data}
}

// Next returns the next argument token. It reports false when the input is
// exhausted.
func (a *ArgumentSplitter) Next() (string, bool) {
	data := a.data
	for a.read < len(data) && isBlank(data[a.read]) {
		a.read++
	}
	if a.read >= len(data) {
		return "", false
	}

	start := a.read
	dquote := false
	parenLevel := 0
	braceLevel := 0

	for a.read < len(data) {
		b := data[a.read]
		a.read++
		switch {
		case b == '\\':
			a.read++
		case b == '\'' && !dquote:
			a.skipSingleQuote()
		case b == '"':
			dquote = !dquote
		case dquote:
			// Everything else inside double quotes is literal.
		case b == '(':
			parenLevel++
		case b == ')':
			if parenLevel > 0 {
				parenLevel--
			}
		case b == '{':
			braceLevel++
		case b == '}':
			if braceLevel > 0 {
				braceLevel--
			}
		case isBlank(b) && parenLevel == 0 && braceLevel == 0:
			return data[start : a.read-1], true
		}
	}
	if a.read > len(data) {
		a.read = len(data)
	}
	return data[start:a.read], true
}

func (a *ArgumentSplitter) skipSingleQuote() {
	for a.read < len(a.data) {
		c := a.data[a.read]
		a.read++
		if c == '\\' {
			a.read++
		} else if c == '\'' {
			return
		}
	}
}

// SplitArguments returns all argument tokens of data.
func SplitArguments(data string) []string {
	var out []string
	splitter := NewArgumentSplitter(data)
	for {
		arg, ok := splitter.Next()
		if !ok {
			return out
		}
		out = append(out, arg)
	}
}

// FirstArgument returns the command name of a raw line, or the whole line
// when it has no word boundaries.
func FirstArgument(data string) string {
	if arg, ok := NewArgumentSplitter(data).Next(); ok {
		return arg
	}
	return data
}

// LastArgument returns the final argument token of a raw line, or the whole
// line when it has none.
func LastArgument(data string) string {
	out := data
	splitter := NewArgumentSplitter(data)
	for {
		arg, ok := splitter.Next()
		if !ok {
			return out
		}
		out = arg
	}
}

// SecondArgument returns the first argument after the command name, or the
// whole line when there is none.
func SecondArgument(data string) string {
	splitter := NewArgumentSplitter(data)
	if _, ok := splitter.Next(); ok {
		if arg, ok := splitter.Next(); ok {
			return arg
		}
	}
	return data
}

// ArgumentsTail returns everything after the command name with the
// separating blanks removed, or the whole line when it has no command.
func ArgumentsTail(data string) string {
	for i := 0; i < len(data); i++ {
		if data[i] == ' ' {
			rest := data[i+1:]
			for j := 0; j < len(rest); j++ {
				if rest[j] != ' ' {
					return rest[j:]
				}
			}
			break
		}
	}
	return data
}
