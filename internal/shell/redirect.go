package shell

import (
	"fmt"
	"strings"
)

// redirection sends a command's output to a file
type redirection struct {
	target string
	append bool
}

// parseRedirect strips a trailing "> file" or ">> file" from the tokens.
// The operator may be attached to the file name.
func parseRedirect(fields []string) ([]string, *redirection, error) {
	var tokens []string
	for _, f := range fields {
		switch {
		case f == ">" || f == ">>":
			tokens = append(tokens, f)
		case strings.HasPrefix(f, ">>"):
			tokens = append(tokens, ">>", f[2:])
		case strings.HasPrefix(f, ">"):
			tokens = append(tokens, ">", f[1:])
		default:
			tokens = append(tokens, f)
		}
	}

	for i, tok := range tokens {
		if tok != ">" && tok != ">>" {
			continue
		}
		if i != len(tokens)-2 {
			next := "newline"
			if i+1 < len(tokens) {
				next = tokens[i+1]
			}
			return nil, nil, fmt.Errorf("bash: syntax error near unexpected token `%s'", next)
		}
		return tokens[:i], &redirection{target: tokens[i+1], append: tok == ">>"}, nil
	}
	return tokens, nil, nil
}

// redirect expects the caller to hold the lock
func (s *Session) redirect(r *redirection, lines []string) error {
	var err error
	if r.append {
		_, err = s.fs.AppendFile(r.target, s.cwd, lines)
	} else {
		_, err = s.fs.WriteFile(r.target, s.cwd, lines)
	}
	if err != nil {
		return fail("bash", r.target, err)
	}
	return nil
}
