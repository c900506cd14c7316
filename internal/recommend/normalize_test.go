// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"reflect"
	"testing"
)

// otherField is a Field kind Normalize does not know about.
type otherField struct{}

func (otherField) isField() {}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input Field
		want  Field
	}{
		{"scalar", Scalar("Kung Fu Panda"), Scalar("kungfupanda")},
		{"scalar keeps tabs", Scalar("Die\tHard"), Scalar("die\thard")},
		{"empty scalar", Scalar(""), Scalar("")},
		{"vector", Vector{"Frozen II", "Toy Story"}, Vector{"frozenii", "toystory"}},
		{"empty vector", Vector{}, Vector{}},
		{"nil", nil, Scalar("")},
		{"unknown kind", otherField{}, Scalar("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%#v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	for _, s := range []string{"Kung Fu Panda", "frozen", "  A  B  ", "ÉCOLE"} {
		once := NormalizeText(s)
		if twice := NormalizeText(once); twice != once {
			t.Errorf("NormalizeText(%q) = %q, want %q", once, twice, once)
		}
	}
}

func TestNormalizeEntry(t *testing.T) {
	got := NormalizeEntry(CatalogEntry{ID: 9, Title: "Toy Story", Genres: "Animation, Comedy"})

	want := NormalizedEntry{
		ID:     9,
		Title:  "toystory",
		Genres: "animation,comedy",
		Soup:   "toystoryanimation,comedy",
	}
	if got != want {
		t.Errorf("NormalizeEntry() = %+v, want %+v", got, want)
	}
}

func TestCompose(t *testing.T) {
	if got := Compose("frozen", "animation"); got != "frozenanimation" {
		t.Errorf("Compose() = %q, want %q", got, "frozenanimation")
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"separators split", "toystory|animation,comedy", []string{"toystory", "animation", "comedy"}},
		{"single runes dropped", "a,b,cd", []string{"cd"}},
		{"stop words dropped", "the,matrix,and,more", []string{"matrix"}},
		{"uppercase lowered", "Sci_Fi", []string{"sci_fi"}},
		{"digits kept", "2001,x9", []string{"2001", "x9"}},
		{"roman numerals kept", "ROCKYⅡ,drama", []string{"rockyⅱ", "drama"}},
		{"superscripts kept", "alien³", []string{"alien³"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
