package highlight

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thiagopls1/lang-kql/kqlparser"
)

// ThemeError reports a theme stylesheet that cannot be parsed. Offset
// is a byte position into the stylesheet source.
type ThemeError struct {
	Message string
	Offset  int
}

func (e *ThemeError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Message)
}

func themeErr(offset int, format string, args ...any) *ThemeError {
	return &ThemeError{Message: fmt.Sprintf(format, args...), Offset: offset}
}

// Theme maps highlight tags to terminal styles.
type Theme struct {
	styles map[Tag]lipgloss.Style
}

// Style returns the compiled style for a tag and whether any rule
// matched it.
func (t *Theme) Style(tag Tag) (lipgloss.Style, bool) {
	style, ok := t.styles[tag]
	return style, ok
}

// Render returns src with every token styled according to the theme.
// The tokens must cover src, as Tokenize output does. Spans whose tag
// has no matching rule, and whitespace, pass through unchanged.
func (t *Theme) Render(src []byte, tokens []kqlparser.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		text := tok.Text(src)
		tag := For(tok.Kind)
		if style, ok := t.styles[tag]; ok && tag != TagNone {
			sb.WriteString(style.Render(text))
			continue
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// defaultStylesheet is the built-in color scheme, ANSI 256 palette.
const defaultStylesheet = `
.keyword     { color: 33; bold: true }
.type        { color: 37 }
.builtin     { color: 136 }
.string      { color: 70 }
.number      { color: 136 }
.bool        { color: 136; italic: true }
.null        { color: 136; italic: true }
.quoted-name { color: 66 }
.variable    { color: 132 }
.operator    { color: 246 }
.comment     { color: 245; italic: true; faint: true }
`

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() *Theme {
	theme, err := ParseTheme(defaultStylesheet)
	if err != nil {
		return &Theme{}
	}
	return theme
}

// themeRule is one parsed stylesheet rule before compilation.
type themeRule struct {
	universal bool
	tag       Tag
	decls     []declaration
}

type declaration struct {
	property string
	value    string
}

// ParseTheme parses a CSS-like stylesheet into a Theme. Rules are
// `selector { property: value; ... }` with selectors `*` (all tags) or
// `.tag`; class rules override universal ones, later rules override
// earlier ones of the same specificity, property by property.
func ParseTheme(src string) (*Theme, error) {
	p := &themeParser{src: src}
	var rules []themeRule
	for {
		p.skipSpace()
		if p.atEnd() {
			break
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return compileTheme(rules), nil
}

type themeParser struct {
	src string
	pos int
}

func (p *themeParser) atEnd() bool { return p.pos >= len(p.src) }

func (p *themeParser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *themeParser) skipSpace() {
	for !p.atEnd() {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// ident reads a run of identifier characters: lower-case letters,
// digits, dash and underscore.
func (p *themeParser) ident() string {
	start := p.pos
	for !p.atEnd() {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *themeParser) parseRule() (themeRule, error) {
	var rule themeRule
	switch p.peek() {
	case '*':
		p.pos++
		rule.universal = true
	case '.':
		p.pos++
		start := p.pos
		name := p.ident()
		if name == "" {
			return rule, themeErr(p.pos, "expected tag name after '.'")
		}
		if !knownTags[Tag(name)] {
			return rule, themeErr(start, "unknown tag %q", name)
		}
		rule.tag = Tag(name)
	default:
		return rule, themeErr(p.pos, "expected selector starting with '*' or '.'")
	}

	p.skipSpace()
	if p.peek() != '{' {
		return rule, themeErr(p.pos, "expected '{' after selector")
	}
	p.pos++

	for {
		p.skipSpace()
		if p.atEnd() {
			return rule, themeErr(p.pos, "expected '}' at end of rule")
		}
		if p.peek() == '}' {
			p.pos++
			return rule, nil
		}
		decl, err := p.parseDeclaration()
		if err != nil {
			return rule, err
		}
		rule.decls = append(rule.decls, decl)
		p.skipSpace()
		if p.peek() == ';' {
			p.pos++
		}
	}
}

func (p *themeParser) parseDeclaration() (declaration, error) {
	start := p.pos
	prop := p.ident()
	if prop == "" {
		return declaration{}, themeErr(p.pos, "expected property name")
	}
	if !validProperty(prop) {
		return declaration{}, themeErr(start, "unknown property %q", prop)
	}
	p.skipSpace()
	if p.peek() != ':' {
		return declaration{}, themeErr(p.pos, "expected ':' after %q", prop)
	}
	p.pos++
	p.skipSpace()

	vstart := p.pos
	for !p.atEnd() {
		c := p.peek()
		if c == ';' || c == '}' || c == '\n' {
			break
		}
		p.pos++
	}
	value := strings.TrimSpace(p.src[vstart:p.pos])
	if value == "" {
		return declaration{}, themeErr(vstart, "empty value for %q", prop)
	}
	if boolProperty(prop) && value != "true" && value != "false" {
		return declaration{}, themeErr(vstart, "property %q wants true or false, got %q", prop, value)
	}
	return declaration{property: prop, value: value}, nil
}

var knownTags = func() map[Tag]bool {
	m := make(map[Tag]bool, len(displayTags))
	for _, tag := range displayTags {
		m[tag] = true
	}
	return m
}()

func validProperty(prop string) bool {
	switch prop {
	case "color", "background", "bold", "italic", "underline", "faint":
		return true
	}
	return false
}

func boolProperty(prop string) bool {
	switch prop {
	case "bold", "italic", "underline", "faint":
		return true
	}
	return false
}

// compileTheme folds rules into one style per tag: universal rules
// first, then the tag's class rules, each pass in stylesheet order,
// later assignments overriding earlier ones property by property.
func compileTheme(rules []themeRule) *Theme {
	styles := make(map[Tag]lipgloss.Style)
	for _, tag := range displayTags {
		props := make(map[string]string)
		for _, rule := range rules {
			if rule.universal {
				applyDecls(props, rule.decls)
			}
		}
		for _, rule := range rules {
			if !rule.universal && rule.tag == tag {
				applyDecls(props, rule.decls)
			}
		}
		if len(props) == 0 {
			continue
		}
		styles[tag] = styleFor(props)
	}
	return &Theme{styles: styles}
}

func applyDecls(props map[string]string, decls []declaration) {
	for _, d := range decls {
		props[d.property] = d.value
	}
}

func styleFor(props map[string]string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for prop, value := range props {
		switch prop {
		case "color":
			style = style.Foreground(lipgloss.Color(value))
		case "background":
			style = style.Background(lipgloss.Color(value))
		case "bold":
			style = style.Bold(value == "true")
		case "italic":
			style = style.Italic(value == "true")
		case "underline":
			style = style.Underline(value == "true")
		case "faint":
			style = style.Faint(value == "true")
		}
	}
	return style
}
