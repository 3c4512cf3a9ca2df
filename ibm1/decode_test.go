package ibm1

import (
	"reflect"
	"strings"
	"testing"
)

func TestDecodeTiesGoToNull(t *testing.T) {
	b := bitext([2]string{"la maison", "the house"})
	m := trainModel(t, b, TrainerConfig{Iterations: 0})

	// Every candidate has p = 0.5 and null is scanned first.
	got := m.AlignAll(b)
	if len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("alignments = %v, want one empty alignment", got)
	}
	if out := Format(got); out != "\n" {
		t.Errorf("Format = %q, want %q", out, "\n")
	}
}

func TestDecodeWithSignal(t *testing.T) {
	b := bitext(
		[2]string{"la", "the"},
		[2]string{"maison", "house"},
	)
	for _, iters := range []int{1, 5} {
		m := trainModel(t, b, TrainerConfig{Iterations: iters})
		if p, pNull := m.Prob("la", "the"), m.Prob(NullToken, "the"); p <= pNull {
			t.Errorf("iters=%d: p(the|la) = %v not above p(the|null) = %v", iters, p, pNull)
		}
		if out := Format(m.AlignAll(b)); out != "0-0\n0-0\n" {
			t.Errorf("iters=%d: Format = %q, want %q", iters, out, "0-0\n0-0\n")
		}
	}
}

func TestDecodeTieBreakLeftmost(t *testing.T) {
	// source: null=0, a=1, b=2; target x=0
	table := Table{
		{F: 0, E: 0}: 0.2,
		{F: 1, E: 0}: 0.4,
		{F: 2, E: 0}: 0.4,
	}
	got := Decode([]int{0, 1, 2}, []int{0}, table)
	want := Alignment{{Source: 0, Target: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodeMissingEntries(t *testing.T) {
	table := Table{
		{F: 1, E: 0}: 0.7,
		{F: 2, E: 1}: 0,
	}
	got := Decode([]int{0, 1, 2}, []int{0, 1, 2}, table)
	want := Alignment{{Source: 0, Target: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodeManyToOne(t *testing.T) {
	table := Table{
		{F: 0, E: 0}: 0.1,
		{F: 1, E: 0}: 0.9,
		{F: 0, E: 1}: 0.1,
		{F: 1, E: 1}: 0.8,
		{F: 2, E: 1}: 0.3,
	}
	got := Decode([]int{0, 1, 2}, []int{0, 1}, table)
	want := Alignment{{Source: 0, Target: 0}, {Source: 0, Target: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodeNeverEmitsNull(t *testing.T) {
	b := bitext(
		[2]string{"das haus ist klein", "the house is small"},
		[2]string{"das haus ist ja groß", "the house is big"},
		[2]string{"das buch ist klein", "the book is small"},
		[2]string{"ein buch", "a book"},
		[2]string{"", "stray"},
		[2]string{"allein", ""},
	)
	for _, method := range []Method{MethodDirect, MethodPosterior} {
		for _, iters := range []int{0, 1, 3, 10} {
			m := trainModel(t, b, TrainerConfig{Iterations: iters, Method: method})
			for i, a := range m.AlignAll(b) {
				for _, l := range a {
					if l.Source < 0 || l.Source >= len(b[i].Source) {
						t.Errorf("%v/%d: pair %d link %v outside source", method, iters, i, l)
					}
					if l.Target < 0 || l.Target >= len(b[i].Target) {
						t.Errorf("%v/%d: pair %d link %v outside target", method, iters, i, l)
					}
				}
			}
		}
	}
}

func TestDecodeIdempotent(t *testing.T) {
	b := bitext(
		[2]string{"das haus", "the house"},
		[2]string{"das buch", "the book"},
	)
	m := trainModel(t, b, TrainerConfig{Iterations: 4})
	first := m.AlignAll(b)
	second := m.AlignAll(b)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decode not deterministic: %v vs %v", first, second)
	}

	c := Encode(b)
	initial, _ := InitialTable(c)
	table, _ := Train(c, initial, TrainerConfig{Iterations: 4})
	if got := AlignCorpus(c, table); !reflect.DeepEqual(got, first) {
		t.Errorf("AlignCorpus = %v, Model.AlignAll = %v", got, first)
	}
}

func TestModelAlignUnknownTokens(t *testing.T) {
	b := bitext(
		[2]string{"la", "the"},
		[2]string{"maison", "house"},
	)
	m := trainModel(t, b, TrainerConfig{Iterations: 1})
	got := m.Align(SentencePair{Source: words("le la"), Target: words("a the")})
	want := Alignment{{Source: 1, Target: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Align = %v, want %v", got, want)
	}
	if p := m.Prob("le", "the"); p != 0 {
		t.Errorf("p(the|le) = %v, want 0", p)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   []Alignment
		want string
	}{
		{"empty corpus", nil, ""},
		{"one empty line", []Alignment{nil}, "\n"},
		{"links in visit order", []Alignment{{{0, 0}, {2, 1}, {1, 2}}, nil, {{3, 0}}}, "0-0 2-1 1-2\n\n3-0\n"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("%s: Format = %q, want %q", tt.name, got, tt.want)
		}
		var sb strings.Builder
		if err := WriteAlignments(&sb, tt.in); err != nil {
			t.Fatal(err)
		}
		if sb.String() != tt.want {
			t.Errorf("%s: WriteAlignments = %q, want %q", tt.name, sb.String(), tt.want)
		}
	}
}

func TestParseLinks(t *testing.T) {
	sure, possible, err := ParseLinks("0-1 2?3  4-4")
	if err != nil {
		t.Fatal(err)
	}
	if want := (Alignment{{0, 1}, {4, 4}}); !reflect.DeepEqual(sure, want) {
		t.Errorf("sure = %v, want %v", sure, want)
	}
	if want := (Alignment{{0, 1}, {2, 3}, {4, 4}}); !reflect.DeepEqual(possible, want) {
		t.Errorf("possible = %v, want %v", possible, want)
	}

	for _, bad := range []string{"0-", "-1", "a-1", "1-b", "12", "1?-2"} {
		if _, _, err := ParseLinks(bad); err == nil {
			t.Errorf("ParseLinks(%q) should fail", bad)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader("0-0 1-1\n\n2-0 0?1\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Alignment{{{0, 0}, {1, 1}}, nil, {{2, 0}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}

	if _, err := Parse(strings.NewReader("0-0\nx\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v, want line 2 error", err)
	}
}
