package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(0)

	testCases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "strips quantity and unit with prep tail",
			raw:  "1 can chickpeas, drained and rinsed",
			want: []string{"chickpeas"},
		},
		{
			name: "collapses bbq synonym",
			raw:  "1/2 cup BBQ sauce",
			want: []string{"barbecue sauce"},
		},
		{
			name: "splits spice conjunction",
			raw:  "Salt and pepper to taste",
			want: []string{"salt", "pepper"},
		},
		{
			name: "rejects bucket words with parenthetical detail",
			raw:  "2 tbsp mixed spices (turmeric, cumin, coriander)",
			want: nil,
		},
		{
			name: "strips decimal quantity",
			raw:  "2.5 lbs chicken breast",
			want: []string{"chicken breast"},
		},
		{
			name: "strips unicode fraction",
			raw:  "½ cup olive oil",
			want: []string{"olive oil"},
		},
		{
			name: "strips leading quantity with of",
			raw:  "2 cans of black beans",
			want: []string{"black beans"},
		},
		{
			name: "drops parenthesized sub-clause",
			raw:  "1 onion (finely chopped)",
			want: []string{"onion"},
		},
		{
			name: "drops standalone modifier",
			raw:  "fresh basil",
			want: []string{"basil"},
		},
		{
			name: "drops multiple prep tails",
			raw:  "2 cups tomatoes, diced, drained",
			want: []string{"tomatoes"},
		},
		{
			name: "keeps non-spice conjunction whole",
			raw:  "macaroni and cheese",
			want: []string{"macaroni and cheese"},
		},
		{
			name: "rejects bare bucket word",
			raw:  "seasoning",
			want: nil,
		},
		{
			name: "rejects herbs bucket",
			raw:  "1 tsp herbs",
			want: nil,
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "   \t  ",
			want: nil,
		},
		{
			name: "all numeric input",
			raw:  "12345",
			want: nil,
		},
		{
			name: "quantity and units only",
			raw:  "2 cups",
			want: nil,
		},
		{
			name: "collapses internal whitespace",
			raw:  "  2   cups   rolled   oats  ",
			want: []string{"rolled oats"},
		},
		{
			name: "garbanzo synonym",
			raw:  "1 can garbanzo beans",
			want: []string{"chickpeas"},
		},
		{
			name: "mixed number quantity",
			raw:  "1 1/2 cups flour",
			want: []string{"flour"},
		},
		{
			name: "glued quantity and unit",
			raw:  "16oz chicken breast",
			want: []string{"chicken breast"},
		},
		{
			name: "glued multiplier",
			raw:  "2x chicken thighs",
			want: []string{"chicken thighs"},
		},
		{
			name: "glued unit inside the line",
			raw:  "1 16oz can tomatoes",
			want: []string{"tomatoes"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := n.Normalize(tc.raw)
			if len(got) != len(tc.want) {
				t.Fatalf("Normalize(%q) = %v, want %v", tc.raw, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Normalize(%q)[%d] = %q, want %q", tc.raw, i, got[i], tc.want[i])
				}
			}
		})
	}
}

// Tokens must never carry digits, unit words, or preparation words,
// whatever the input looks like.
func TestNormalize_TokenHygiene(t *testing.T) {
	n := NewNormalizer(0)

	inputs := []string{
		"1 can chickpeas, drained and rinsed",
		"1/2 cup BBQ sauce",
		"Salt and pepper to taste",
		"3 cloves garlic, minced",
		"2 lbs ground beef",
		"1 bag frozen peas (thawed)",
		"¾ cup shredded cheddar cheese",
		"10 oz spinach, rinsed",
		"1 bottle sparkling water",
		"2-3 ripe bananas",
		"16oz chicken breast",
		"2x chicken thighs",
		"1 16oz can tomatoes",
	}

	for _, raw := range inputs {
		for _, token := range n.Normalize(raw) {
			if token == "" {
				t.Errorf("Normalize(%q) produced an empty token", raw)
				continue
			}
			if token[0] >= '0' && token[0] <= '9' {
				t.Errorf("Normalize(%q) produced digit-leading token %q", raw, token)
			}
			for _, word := range strings.Fields(token) {
				if measurementUnits[word] {
					t.Errorf("Normalize(%q) kept unit word %q in token %q", raw, word, token)
				}
				if preparationModifiers[word] {
					t.Errorf("Normalize(%q) kept preparation word %q in token %q", raw, word, token)
				}
			}
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(0)

	inputs := []string{
		"1 can chickpeas, drained and rinsed",
		"1/2 cup BBQ sauce",
		"Salt and pepper to taste",
		"2 cups rolled oats",
		"fresh basil",
	}

	for _, raw := range inputs {
		first := n.Normalize(raw)
		for _, token := range first {
			again := n.Normalize(token)
			if len(again) != 1 || again[0] != token {
				t.Errorf("Normalize not idempotent: Normalize(%q) = %v, want [%q]", token, again, token)
			}
		}
	}
}

func TestNormalize_LongInput(t *testing.T) {
	n := NewNormalizer(0)

	longLine := "2 cups " + strings.Repeat("very ", 30) + "long winded tomato sauce"
	tokens := n.Normalize(longLine)

	for _, token := range tokens {
		if len(token) > defaultMaxInputLength {
			t.Errorf("token %q exceeds the input cap", token)
		}
	}
}

func TestNormalize_TruncationRuneBoundary(t *testing.T) {
	n := NewNormalizer(10)

	// The cap lands in the middle of the two-byte "¼"; truncation must back
	// up to the rune start instead of emitting a broken byte.
	tokens := n.Normalize("chickpeas¼ cup salt")

	if len(tokens) != 1 || tokens[0] != "chickpeas" {
		t.Fatalf("Normalize() = %v, want [chickpeas]", tokens)
	}
	for _, token := range tokens {
		if !utf8.ValidString(token) {
			t.Errorf("token %q is not valid UTF-8", token)
		}
	}
}

func TestNormalize_CustomMaxLength(t *testing.T) {
	n := NewNormalizer(20)

	tokens := n.Normalize("2 cups something quite long indeed")
	for _, token := range tokens {
		if len(token) > 20 {
			t.Errorf("token %q exceeds configured cap of 20", token)
		}
	}
}
