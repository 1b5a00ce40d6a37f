package slug

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	g := New(Sequence("fallback"))
	tests := []struct {
		in   string
		want string
	}{
		{"Внешность", "vneshnost"},
		{"1. Внешность", "vneshnost"},
		{"1.1 Рост", "rost"},
		{"3.2.1 Вопрос", "vopros"},
		{"3.2.1. Вопрос", "vopros"},
		{"Восприятие роста", "vospriyatie-rosta"},
		{"Какой у тебя рост?", "kakoy-u-tebya-rost"},
		{"Щука и ёж", "schuka-i-yozh"},
		{"Объём, вес & «форма»", "obyom-ves-forma"},
		{"  много   пробелов  ", "mnogo-probelov"},
		{"a - - b", "a-b"},
		{"Café crème", "cafe-creme"},
		{"snake_case stays", "snake_case-stays"},
		{"Mixed Case", "mixed-case"},
		{"(1) вопрос", "1-vopros"},
		{"№5 рост", "5-rost"},
		{"5 рост", "rost"},
		{"2024", "2024"},
	}
	for _, tt := range tests {
		if got := g.Make(tt.in); got != tt.want {
			t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMake_Truncates(t *testing.T) {
	got := Make(strings.Repeat("очень длинный заголовок ", 10))
	assert.LessOrEqual(t, len(got), MaxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
	assert.True(t, strings.HasPrefix(got, "ochen-dlinnyy-zagolovok"))
}

func TestMake_FallbackIsInjectable(t *testing.T) {
	g := New(Sequence("gen"))
	assert.Equal(t, "gen-1", g.Make(""))
	assert.Equal(t, "gen-2", g.Make("🎭"))
	assert.Equal(t, "gen-3", g.Make("1.2.3"))
	assert.Equal(t, "gen-4", g.Make("!!!"))
}

func TestMake_DefaultFallbackFormat(t *testing.T) {
	re := regexp.MustCompile(`^generated-id-\d+-[0-9a-f]{9}$`)
	a := Make("???")
	b := Make("???")
	assert.Regexp(t, re, a)
	assert.Regexp(t, re, b)
	assert.NotEqual(t, a, b)
}

func TestMake_Deterministic(t *testing.T) {
	inputs := []string{"Внешность", "1.1 Рост", "Какой у тебя рост?", "свой вариант", "(1) вопрос", "№5 рост", "2024"}
	for _, in := range inputs {
		first := Make(in)
		assert.Equal(t, first, Make(in), "input %q", in)
		assert.Equal(t, first, Make(first), "slug of slug for %q", in)
	}
}

func TestGenerator_Tally(t *testing.T) {
	var n int
	g := New(Sequence("gen")).Tally(&n)
	assert.Equal(t, "rost", g.Make("Рост"))
	assert.Equal(t, 0, n)
	assert.Equal(t, "gen-1", g.Make("🎭"))
	assert.Equal(t, "gen-2", g.Make(""))
	assert.Equal(t, 2, n)

	var m int
	var nilGen *Generator
	assert.True(t, strings.HasPrefix(nilGen.Tally(&m).Make("!"), "generated-id-"))
	assert.Equal(t, 1, m)
}

func TestMake_ZeroGenerator(t *testing.T) {
	var g Generator
	assert.True(t, strings.HasPrefix(g.Make(""), "generated-id-"))
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "privet, mir", Transliterate("привет, мир"))
	assert.Equal(t, "abc 123", Transliterate("abc 123"))
	assert.Equal(t, "podezd", Transliterate("подъезд"))
}
