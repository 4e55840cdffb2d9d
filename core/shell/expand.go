package shell

import (
	"strings"

	"github.com/riversh/riversh/core/vos"
)

// WordExpander turns one argument token into zero or more expanded words.
// Implementations never fail; an argument with no matches expands to no
// words and the caller substitutes an empty-string placeholder.
//
// The full expansion grammar (globs, arrays, substitutions) lives behind
// this interface; the job model only depends on the contract.
type WordExpander interface {
	Expand(arg string) []string
}

// EnvExpander is the default word expander: it resolves $NAME and ${NAME}
// references against an environment sink and passes everything else through
// verbatim. Single-quoted arguments are left untouched.
type EnvExpander struct {
	Env vos.VEnv
}

var _ WordExpander = (*EnvExpander)(nil)

func (e *EnvExpander) Expand(arg string) []string {
	if len(arg) >= 2 && arg[0] == '\'' && arg[len(arg)-1] == '\'' {
		return []string{arg[1 : len(arg)-1]}
	}
	unquoted := strings.TrimPrefix(strings.TrimSuffix(arg, `"`), `"`)
	if !strings.ContainsRune(unquoted, '$') {
		return []string{unquoted}
	}
	return []string{e.Env.ExpandEnv(unquoted)}
}

// LiteralExpander passes every argument through unchanged. Useful in tests
// and for callers that perform their own expansion.
type LiteralExpander struct{}

var _ WordExpander = LiteralExpander{}

func (LiteralExpander) Expand(arg string) []string { return []string{arg} }
