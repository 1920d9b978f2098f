package main

import (
	"testing"

	"github.com/glintjs/glint/js/parser"
)

func TestRoundTripReproducesInput(t *testing.T) {
	sources := []string{
		"",
		"let x = 1; // keep\n",
		"/* header */\nfunction f(a, b) {\n\treturn a + b;\n}\n",
		"const s = `a${x}b`;\n",
		"let broken = ;\nconst ok = 1;\n",
	}
	for _, src := range sources {
		out, err := roundTrip([]byte(src))
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		if string(out) != src {
			t.Errorf("%q: round-trip printed %q", src, out)
		}
	}
}

func TestRoundTripWithOptions(t *testing.T) {
	src := "export const el = <div id=\"a\">hi</div>;\n"
	out, err := roundTrip([]byte(src), parser.WithSourceType(parser.SourceModule), parser.WithJSX())
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != src {
		t.Errorf("round-trip printed %q", out)
	}
}
