package formatters

import "strings"

// dateFieldLetters are the pattern letters that expand to calendar fields.
const dateFieldLetters = "yMdEHhmsaZG"

type dateTokenKind uint8

const (
	literalToken dateTokenKind = iota
	fieldToken
)

// dateToken is either literal text or a run of one field letter.
type dateToken struct {
	kind   dateTokenKind
	text   string
	letter byte
	count  int
}

func isDateFieldLetter(c byte) bool {
	return strings.IndexByte(dateFieldLetters, c) >= 0
}

// tokenizeDatePattern splits pattern into literal and field tokens in a
// single pass. Text between single quotes is literal, and two consecutive
// single quotes produce one quote character both inside and outside a
// quoted run. An unterminated quote makes the rest of the pattern literal.
func tokenizeDatePattern(pattern string) []dateToken {
	var (
		tokens  []dateToken
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		tokens = append(tokens, dateToken{kind: literalToken, text: literal.String()})
		literal.Reset()
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]

		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				literal.WriteByte('\'')
				i += 2
				continue
			}
			i++
			for i < len(pattern) {
				if pattern[i] == '\'' {
					if i+1 < len(pattern) && pattern[i+1] == '\'' {
						literal.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				literal.WriteByte(pattern[i])
				i++
			}
		case isDateFieldLetter(c):
			flush()
			j := i + 1
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			tokens = append(tokens, dateToken{kind: fieldToken, letter: c, count: j - i})
			i = j
		default:
			literal.WriteByte(c)
			i++
		}
	}
	flush()

	return tokens
}
