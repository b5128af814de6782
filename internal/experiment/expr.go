package experiment

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// EvalExpressions resolves templated string values in a generic document.
//
// Two forms are recognized:
//   - "{{expr}}": after `{name}` placeholders are substituted from the
//     top-level scope, the remaining text is evaluated as a CUE expression
//     and the field is replaced with the resulting number, bool, or string.
//   - any other string: `{name}` placeholders are substituted textually.
//
// Nested mappings resolve against the top-level scope, so dataset fields can
// reference flat hyperparameters. In soft mode unresolvable values are left
// untouched instead of failing.
func EvalExpressions(raw map[string]any, soft bool) (map[string]any, error) {
	out := copyMap(raw)
	ev := &evaluator{ctx: cuecontext.New(), scope: out, soft: soft}
	if err := ev.walkMap(out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

type evaluator struct {
	ctx   *cue.Context
	scope map[string]any
	soft  bool
}

func (ev *evaluator) walkMap(m map[string]any, prefix string) error {
	for key, val := range m {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := val.(type) {
		case string:
			resolved, err := ev.resolve(v)
			if err != nil {
				if ev.soft {
					continue
				}
				return fmt.Errorf("%s: %w", path, err)
			}
			m[key] = resolved
		case map[string]any:
			if err := ev.walkMap(v, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolve handles a single string value.
func (ev *evaluator) resolve(s string) (any, error) {
	if len(s) >= 4 && strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}") {
		inner, err := substitutePlaceholders(s[2:len(s)-2], ev.scope)
		if err != nil {
			return nil, err
		}
		return ev.eval(inner)
	}
	return substitutePlaceholders(s, ev.scope)
}

// eval evaluates a CUE expression and extracts its concrete value.
func (ev *evaluator) eval(expr string) (any, error) {
	v := ev.ctx.CompileString(expr)
	if v.Err() != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, v.Err())
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("expression %q is not concrete: %w", expr, err)
	}

	switch v.Kind() {
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return int(i), nil
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.BoolKind:
		return v.Bool()
	case cue.StringKind:
		return v.String()
	default:
		return nil, fmt.Errorf("expression %q yields unsupported kind %s", expr, v.Kind())
	}
}

// substitutePlaceholders replaces `{name}` tokens with scope values.
// Unknown names are an error; a brace with no matching close passes through.
func substitutePlaceholders(s string, scope map[string]any) (string, error) {
	if !strings.ContainsRune(s, '{') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(s[i:], '}')
		if end < 0 {
			b.WriteString(s[i:])
			break
		}
		name := s[i+1 : i+end]
		val, ok := scope[name]
		if !ok {
			return "", fmt.Errorf("unknown field %q in template", name)
		}
		b.WriteString(formatScalar(val))
		i += end + 1
	}
	return b.String(), nil
}

// formatScalar renders a scope value the way it appears in YAML source.
func formatScalar(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return fmt.Sprintf("%v", n)
	}
}
