// Small terminal styling helper, trimmed down from
// https://raw.githubusercontent.com/shabbyrobe/golib/master/termfmt/termfmt.go
// Provided under an MIT license.
package termfmt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"

	"golang.org/x/term"
)

type Escape interface {
	Wrap(out string) string
}

func Bold() Style               { return (Style{}).Bold() }
func Fg(c C16Name) Style        { return (Style{}).Fg(c) }
func With(escs ...Escape) Style { return (Style{}).With(escs...) }

// Style is a fmt.Formatter: print it with any verb and the value set with V comes out wrapped
// in the style's escapes.  With colour turned off only the value is printed.
type Style struct {
	escapes []Escape
	v       any
}

var _ fmt.Formatter = Style{}

func (c Style) With(escs ...Escape) Style {
	c.escapes = append(c.escapes[:len(c.escapes):len(c.escapes)], escs...)
	return c
}

func (c Style) Bold() Style        { return c.With(BoldEscape{}) }
func (c Style) Fg(n C16Name) Style { return c.With(C16Color{Name: n}) }
func (c Style) V(v any) Style {
	c.v = v
	return c
}

func (c Style) Format(f fmt.State, verb rune) {
	v := printable(fmt.Sprintf(buildValueFormat(f, verb), c.v))
	if enabled.Load() {
		for i := len(c.escapes) - 1; i >= 0; i-- {
			v = c.escapes[i].Wrap(v)
		}
	}
	f.Write([]byte(v))
}

func buildValueFormat(f fmt.State, verb rune) string {
	s := "%"
	for _, flag := range " +-0#" {
		if f.Flag(int(flag)) {
			s += string(flag)
		}
	}
	if width, ok := f.Width(); ok {
		s += strconv.Itoa(width)
	}
	if prec, ok := f.Precision(); ok {
		s += "." + strconv.Itoa(prec)
	}
	return s + string(verb)
}

type BoldEscape struct{}

func (b BoldEscape) Wrap(v string) string { return fmt.Sprintf("\x1b[1m%s\x1b[0m", v) }

type C16Name uint8

const (
	DefaultColor C16Name = iota

	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	LightGrey

	DarkGrey
	LightRed
	LightGreen
	LightYellow
	LightBlue
	LightMagenta
	LightCyan
	White
)

type C16Color struct {
	Name C16Name
	Bg   bool
}

func (c C16Color) Wrap(out string) string {
	var cv uint8
	if c.Name == DefaultColor {
		cv = 39
	} else {
		// fg: the lower 8 colours run from 30 to 37, the upper 8 from 90 to 97.
		if c.Name < DarkGrey {
			cv = uint8(c.Name-Black) + 30
		} else {
			cv = uint8(c.Name-DarkGrey) + 90
		}
	}

	if c.Bg {
		cv += 10
	}

	return fmt.Sprintf("\x1b[%dm"+"%s"+"\x1b[0m", cv, out)
}

var enabled atomic.Bool

// Enable turns escapes on or off globally.
func Enable(on bool) { enabled.Store(on) }

// Detect turns escapes on when f is a terminal and NO_COLOR isn't set.
func Detect(f *os.File) {
	_, noColor := os.LookupEnv("NO_COLOR")
	Enable(!noColor && term.IsTerminal(int(f.Fd())))
}

func mapPrintable(r rune) rune {
	if unicode.IsGraphic(r) {
		return r
	}
	return -1
}

func printable(v string) string {
	return strings.Map(mapPrintable, v)
}
