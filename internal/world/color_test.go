package world

import (
	"image/color"
	"regexp"
	"testing"
)

func TestColor_KnownValues(t *testing.T) {
	cases := map[string]string{
		"France":        "#e7743b",
		"Germany":       "#ad6393",
		"a":             "#000061",
		"Côte d'Ivoire": "#12097b",
	}
	for name, want := range cases {
		if got := Color(name); got != want {
			t.Fatalf("Color(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestColor_EmptyIsUnknown(t *testing.T) {
	if Color("") != Color(UnknownName) {
		t.Fatalf("empty name should colour as %q: %s vs %s", UnknownName, Color(""), Color(UnknownName))
	}
}

func TestColor_Format(t *testing.T) {
	re := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, name := range []string{"x", "Germany", "United States of America", "日本"} {
		c := Color(name)
		if !re.MatchString(c) {
			t.Fatalf("Color(%q) = %q, not #rrggbb", name, c)
		}
		if Color(name) != c {
			t.Fatalf("Color(%q) not deterministic", name)
		}
	}
}

func TestColorRGBA_MatchesHex(t *testing.T) {
	for _, name := range []string{"France", "", "Player"} {
		if got, want := ColorRGBA(name), ParseHexColor(Color(name)); got != want {
			t.Fatalf("ColorRGBA(%q) = %+v, hex gives %+v", name, got, want)
		}
	}
}

func TestParseHexColor_Malformed(t *testing.T) {
	black := color.RGBA{A: 0xff}
	for _, s := range []string{"", "#12", "123456", "#zzzzzz"} {
		if got := ParseHexColor(s); got != black {
			t.Fatalf("ParseHexColor(%q) = %+v, want opaque black", s, got)
		}
	}
	if got := ParseHexColor("#ff8000"); got != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Fatalf("unexpected colour %+v", got)
	}
}
