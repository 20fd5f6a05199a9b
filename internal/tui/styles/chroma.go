package styles

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

// GetChromaTheme builds syntax highlighting rules matching the current
// theme.
func GetChromaTheme() chroma.StyleEntries {
	t := CurrentTheme()

	return chroma.StyleEntries{
		chroma.Text:                "#" + colorToHex(t.FgBase),
		chroma.Error:               "#" + colorToHex(t.Error),
		chroma.Comment:             "#" + colorToHex(t.FgMuted) + " italic",
		chroma.CommentPreproc:      "#" + colorToHex(t.Warning),
		chroma.Keyword:             "#" + colorToHex(t.Primary) + " bold",
		chroma.KeywordReserved:     "#" + colorToHex(t.Accent) + " bold",
		chroma.KeywordNamespace:    "#" + colorToHex(t.Purple),
		chroma.KeywordType:         "#" + colorToHex(t.Blue),
		chroma.Operator:            "#" + colorToHex(t.Orange),
		chroma.Punctuation:         "#" + colorToHex(t.FgSubtle),
		chroma.Name:                "#" + colorToHex(t.FgBase),
		chroma.NameBuiltin:         "#" + colorToHex(t.Yellow),
		chroma.NameTag:             "#" + colorToHex(t.Pink),
		chroma.NameAttribute:       "#" + colorToHex(t.Cyan),
		chroma.NameClass:           "#" + colorToHex(t.Secondary) + " bold",
		chroma.NameConstant:        "#" + colorToHex(t.Accent),
		chroma.NameDecorator:       "#" + colorToHex(t.Pink),
		chroma.NameException:       "#" + colorToHex(t.Error),
		chroma.NameFunction:        "#" + colorToHex(t.BlueLight),
		chroma.Literal:             "#" + colorToHex(t.Green),
		chroma.LiteralNumber:       "#" + colorToHex(t.Yellow),
		chroma.LiteralString:       "#" + colorToHex(t.Green),
		chroma.LiteralStringEscape: "#" + colorToHex(t.Orange),
		chroma.GenericDeleted:      "#" + colorToHex(t.Error),
		chroma.GenericEmph:         "#" + colorToHex(t.FgBase) + " italic",
		chroma.GenericInserted:     "#" + colorToHex(t.Success),
		chroma.GenericStrong:       "#" + colorToHex(t.FgBase) + " bold",
	}
}

// Highlight renders code with syntax colors picked by filename. On any
// failure the code comes back untouched; a preview without colors beats
// no preview.
func Highlight(code, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style, err := chroma.NewStyle("glimpse", GetChromaTheme())
	if err != nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var b strings.Builder
	if err := formatters.TTY256.Format(&b, style, iterator); err != nil {
		return code
	}
	return b.String()
}
