package attr

import (
	"go/token"
	"strings"

	"extractor-generator/internal/analyze"
	"extractor-generator/internal/diagnostic"
)

// directivePrefix introduces a recognized annotation group. Comment lines
// without it belong to other tools and are ignored.
const directivePrefix = "extract:"

// viaKeyword is the only defined sub-directive.
const viaKeyword = "via"

// Config is the resolved adapter configuration for one scope (a record
// or a single field).
type Config struct {
	// Via is the adapter reference, nil when no via() directive is present.
	Via *Via
}

// Via is a resolved via(<type path>) directive.
type Via struct {
	// Path is the adapter type path, e.g. "api.JSON".
	Path string
	// Pos points at the via keyword inside the directive comment.
	Pos token.Position
}

// Resolve extracts the adapter configuration from one scope's annotations.
// Annotations are processed in declaration order; foreign comments are
// skipped without effect. At most one via() is allowed per scope: a second
// occurrence fails with its own position, not the first one's.
func Resolve(annotations []analyze.Annotation) (Config, error) {
	var cfg Config

	for _, ann := range annotations {
		body, ok := strings.CutPrefix(ann.Text, directivePrefix)
		if !ok {
			continue
		}

		// Column of the first byte after "//extract:".
		offset := len("//") + len(directivePrefix)

		if err := resolveGroup(&cfg, body, ann.Pos, offset); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// resolveGroup parses one recognized group's comma-separated sub-directives.
func resolveGroup(cfg *Config, body string, pos token.Position, offset int) error {
	if strings.TrimSpace(body) == "" {
		return diagnostic.Errorf(diagnostic.CodeMalformedAnnotation, subPos(pos, offset),
			"empty directive, expected `%s(<type path>)`", viaKeyword)
	}

	for len(body) > 0 {
		segment := body
		next := ""

		if i := strings.IndexByte(body, ','); i >= 0 {
			segment, next = body[:i], body[i+1:]
		}

		segOffset := offset + countLeadingSpace(segment)
		segment = strings.TrimSpace(segment)

		if err := resolveDirective(cfg, segment, pos, segOffset); err != nil {
			return err
		}

		offset += len(body) - len(next)
		body = next
	}

	return nil
}

// resolveDirective parses a single sub-directive of the form via(<type path>).
func resolveDirective(cfg *Config, segment string, pos token.Position, offset int) error {
	dirPos := subPos(pos, offset)

	rest, ok := strings.CutPrefix(segment, viaKeyword)
	if !ok || !strings.HasPrefix(rest, "(") {
		return diagnostic.Errorf(diagnostic.CodeMalformedAnnotation, dirPos,
			"unknown directive %q, expected `%s(<type path>)`", segment, viaKeyword)
	}

	if !strings.HasSuffix(rest, ")") {
		return diagnostic.Errorf(diagnostic.CodeMalformedAnnotation, dirPos,
			"missing closing parenthesis in %q", segment)
	}

	path := strings.TrimSpace(rest[1 : len(rest)-1])
	if path == "" {
		return diagnostic.Errorf(diagnostic.CodeMalformedAnnotation, dirPos,
			"empty adapter path in `%s()`", viaKeyword)
	}

	if !validTypePath(path) {
		return diagnostic.Errorf(diagnostic.CodeMalformedAnnotation, dirPos,
			"invalid adapter path %q", path)
	}

	if cfg.Via != nil {
		return diagnostic.Errorf(diagnostic.CodeAdapterAlreadySpecified, dirPos,
			"`%s` specified more than once", viaKeyword)
	}

	cfg.Via = &Via{Path: path, Pos: dirPos}

	return nil
}

// validTypePath reports whether path is a dot-separated sequence of Go
// identifiers, e.g. "JSON" or "api.JSON".
func validTypePath(path string) bool {
	for _, part := range strings.Split(path, ".") {
		if !validIdent(part) {
			return false
		}
	}

	return true
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// subPos shifts a comment's position to a byte offset inside it. Directive
// comments are single-line, so only the column moves.
func subPos(pos token.Position, offset int) token.Position {
	pos.Column += offset
	pos.Offset += offset

	return pos
}

func countLeadingSpace(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}
