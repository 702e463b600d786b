package scen2html

import (
	"strings"
	"testing"
)

func mustRegistry(t *testing.T, overrides map[string]KeywordSpec) *registry {
	t.Helper()
	reg, err := newRegistry(overrides)
	if err != nil {
		t.Fatalf("newRegistry: %v", err)
	}
	return reg
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		expr         string
		wantKeywords []string
	}{
		{name: "single keyword", expr: "太字", wantKeywords: []string{"太字"}},
		{name: "compound", expr: "太字+枠線", wantKeywords: []string{"太字", "枠線"}},
		{name: "full width plus", expr: "太字＋斜体", wantKeywords: []string{"太字", "斜体"}},
		{name: "duplicate keyword kept once", expr: "太字+太字", wantKeywords: []string{"太字"}},
		{name: "triple compound", expr: "枠線+太字+下線", wantKeywords: []string{"枠線", "太字", "下線"}},
		{name: "keyword with attribute", expr: "色 color=red", wantKeywords: []string{"色"}},
	}

	reg := mustRegistry(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diags := newCollector(false)
			tags := reg.resolve(tt.expr, 1, diags)
			var got []string
			for _, tag := range tags {
				got = append(got, tag.Keyword)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantKeywords, ",") {
				t.Errorf("resolve(%q) = %v, want %v", tt.expr, got, tt.wantKeywords)
			}
			if len(diags.diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags.diags)
			}
		})
	}
}

func TestRegistry_ResolveUnknownKeyword(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, nil)
	diags := newCollector(false)

	tags := reg.resolve("太字+謎の何か", 7, diags)
	if len(tags) != 1 || tags[0].Keyword != "太字" {
		t.Fatalf("known keyword should survive, got %v", tags)
	}
	if len(diags.diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags.diags))
	}
	d := diags.diags[0]
	if d.Kind != DiagUnknownKeyword || d.Severity != SeverityWarning {
		t.Errorf("got %v/%v, want unknown-keyword warning", d.Kind, d.Severity)
	}
	if d.Line != 7 {
		t.Errorf("Line = %d, want 7", d.Line)
	}
	if d.Column <= 1 {
		t.Errorf("Column = %d, want the keyword position", d.Column)
	}
}

func TestRegistry_ResolveUnknownKeywordStrict(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, nil)
	diags := newCollector(true)

	reg.resolve("謎", 1, diags)
	if d := diags.firstError(); d == nil {
		t.Fatal("strict mode should record an ERROR-severity diagnostic")
	}
}

func TestRegistry_ResolveSuggestion(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, nil)
	diags := newCollector(false)

	reg.resolve("見出し7", 1, diags)
	if len(diags.diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags.diags))
	}
	if fix := diags.diags[0].Fix; !strings.Contains(fix, "見出し") {
		t.Errorf("Fix = %q, want a near-miss suggestion", fix)
	}
}

func TestRegistry_AttributeBinding(t *testing.T) {
	t.Parallel()

	reg := mustRegistry(t, nil)

	t.Run("binds to nearest preceding keyword", func(t *testing.T) {
		t.Parallel()
		diags := newCollector(false)
		tags := reg.resolve("太字+色 color=blue", 1, diags)
		if len(tags) != 2 {
			t.Fatalf("got %d tags", len(tags))
		}
		if len(tags[0].Attrs) != 0 {
			t.Errorf("attribute leaked to %q", tags[0].Keyword)
		}
		if len(tags[1].Attrs) != 1 || tags[1].Attrs[0] != (Attr{Key: "color", Value: "blue"}) {
			t.Errorf("色 attrs = %v", tags[1].Attrs)
		}
	})

	t.Run("full width equals", func(t *testing.T) {
		t.Parallel()
		diags := newCollector(false)
		tags := reg.resolve("色 color＝red", 1, diags)
		if len(tags) != 1 || len(tags[0].Attrs) != 1 {
			t.Fatalf("tags = %v", tags)
		}
		if tags[0].Attrs[0].Value != "red" {
			t.Errorf("Value = %q", tags[0].Attrs[0].Value)
		}
	})

	t.Run("rejected by keyword", func(t *testing.T) {
		t.Parallel()
		diags := newCollector(false)
		tags := reg.resolve("太字 color=red", 1, diags)
		if len(tags) != 1 || len(tags[0].Attrs) != 0 {
			t.Fatalf("attribute should be dropped, tags = %v", tags)
		}
		if len(diags.diags) != 1 || diags.diags[0].Kind != DiagUnknownAttribute {
			t.Errorf("diags = %v", diags.diags)
		}
	})

	t.Run("no preceding keyword", func(t *testing.T) {
		t.Parallel()
		diags := newCollector(false)
		reg.resolve("color=red", 1, diags)
		if len(diags.diags) != 1 || diags.diags[0].Kind != DiagUnknownAttribute {
			t.Errorf("diags = %v", diags.diags)
		}
	})
}

func TestNewRegistry_Overrides(t *testing.T) {
	t.Parallel()

	t.Run("custom keyword", func(t *testing.T) {
		t.Parallel()
		reg := mustRegistry(t, map[string]KeywordSpec{"警告": {Tag: "div", Class: "warning"}})
		diags := newCollector(false)
		tags := reg.resolve("警告", 1, diags)
		if len(tags) != 1 || tags[0].Def.Tag != "div" || tags[0].Def.Class != "warning" {
			t.Errorf("tags = %v", tags)
		}
	})

	t.Run("unknown tag rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := newRegistry(map[string]KeywordSpec{"奇妙": {Tag: "marquee"}}); err == nil {
			t.Error("expected an error for a tag outside the nesting table")
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := newRegistry(map[string]KeywordSpec{" ": {Tag: "div"}}); err == nil {
			t.Error("expected an error for an empty keyword name")
		}
	})
}

func TestRuneDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"見出し1", "見出し7", 1},
		{"太字", "", 2},
	}
	for _, tt := range tests {
		if got := runeDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("runeDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
