package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalizer reduces a free-text ingredient line to short product-searchable
// tokens. The upstream recipe generator is instructed to emit a clean
// shopping list already, but that contract is not guaranteed; this is the
// defensive floor that keeps noise out of the retailer query layer.
type Normalizer struct {
	maxInputLength int
}

// Compiled regex patterns for ingredient normalization
var (
	// Matches parenthesized sub-clauses like "(about 2 cups)" or "(optional)"
	parenClausePattern = regexp.MustCompile(`\([^)]*\)`)

	// Matches quantity tokens: integers, decimals, ASCII fractions (1/2),
	// mixed numbers (1 1/2), ranges (2-3), and unicode fractions
	quantityPattern = regexp.MustCompile(`^(\d+([./]\d+)?(-\d+([./]\d+)?)?|[¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]|\d+[¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞])$`)

	// Matches words that begin with a digit or fraction, including glued
	// quantity+unit forms like "16oz" or "2x"
	leadingQuantityPattern = regexp.MustCompile(`^[\d¼½¾⅓⅔⅕⅖⅗⅘⅙⅚⅛⅜⅝⅞]`)

	// Matches tokens that still carry digits after stripping
	digitBearingPattern = regexp.MustCompile(`\d`)

	// Multiple spaces cleanup
	spaceCollapsePattern = regexp.MustCompile(`\s+`)
)

// measurementUnits are quantity units that never belong in a search token
var measurementUnits = map[string]bool{
	"cup": true, "cups": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"can": true, "cans": true,
	"jar": true, "jars": true,
	"bottle": true, "bottles": true,
	"package": true, "packages": true,
	"bag": true, "bags": true,
	"clove": true, "cloves": true,
	"slice": true, "slices": true,
	"piece": true, "pieces": true,
	"shot": true, "shots": true,
	"pinch": true, "dash": true,
}

// preparationModifiers are trailing or standalone preparation words that add
// nothing to a keyword search
var preparationModifiers = map[string]bool{
	"drained": true, "rinsed": true, "peeled": true, "chopped": true,
	"sliced": true, "diced": true, "minced": true, "grated": true,
	"shredded": true, "cooked": true, "raw": true, "frozen": true,
	"fresh": true, "dried": true, "ground": true,
}

// bucketWords are generic terms the recipe generator occasionally emits
// instead of concrete items. Searching them returns junk, so the whole line
// is rejected.
var bucketWords = map[string]bool{
	"spices":        true,
	"seasoning":     true,
	"seasonings":    true,
	"herbs":         true,
	"mixed spices":  true,
	"mixed herbs":   true,
	"spice mix":     true,
	"seasoning mix": true,
}

// knownSpices drive the conjunction split: "salt and pepper" is two searches,
// not one
var knownSpices = map[string]bool{
	"salt": true, "pepper": true, "cumin": true, "coriander": true,
	"turmeric": true, "paprika": true, "cinnamon": true, "nutmeg": true,
	"oregano": true, "basil": true, "thyme": true, "rosemary": true,
	"ginger": true, "cardamom": true, "cayenne": true, "sage": true,
	"parsley": true, "dill": true, "saffron": true, "allspice": true,
}

// synonymMap collapses common shorthand into the form the retailer indexes
var synonymMap = map[string]string{
	"bbq sauce":           "barbecue sauce",
	"bbq":                 "barbecue sauce",
	"evoo":                "olive oil",
	"ap flour":            "all purpose flour",
	"confectioners sugar": "powdered sugar",
	"scallions":           "green onions",
	"cilantro leaves":     "cilantro",
	"garbanzo beans":      "chickpeas",
}

// connectorWords are glue tokens dropped when they survive on their own
var connectorWords = map[string]bool{
	"and": true, "or": true, "of": true, "to": true, "taste": true,
	"for": true, "plus": true, "with": true,
}

const defaultMaxInputLength = 80

// NewNormalizer creates a normalizer with the given input length cap.
// A cap of zero or less uses the default of 80 characters.
func NewNormalizer(maxInputLength int) *Normalizer {
	if maxInputLength <= 0 {
		maxInputLength = defaultMaxInputLength
	}
	return &Normalizer{maxInputLength: maxInputLength}
}

// Normalize converts one free-text ingredient line into zero or more search
// tokens. It never fails; unusable input yields an empty slice.
func (n *Normalizer) Normalize(raw string) []string {
	// Step 1: lowercase and collapse whitespace
	line := strings.ToLower(strings.TrimSpace(raw))
	line = spaceCollapsePattern.ReplaceAllString(line, " ")
	if line == "" {
		return nil
	}

	// Over-long input is truncated at a word boundary, then processed
	// normally. The cap is in bytes, so back up to a rune start first.
	if len(line) > n.maxInputLength {
		cut := n.maxInputLength
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
		if lastSpace := strings.LastIndex(line, " "); lastSpace > 0 {
			line = line[:lastSpace]
		}
	}

	// Step 2: strip leading quantity and unit tokens ("1/2 cup", "2 cans of")
	line = stripLeadingQuantities(line)

	// Step 3: drop parenthesized sub-clauses entirely
	line = parenClausePattern.ReplaceAllString(line, " ")

	// Step 4: drop trailing preparation modifiers after a comma
	line = stripModifierTails(line)

	// Step 5: drop remaining standalone modifiers, units, and numeric tokens
	line = stripNoiseTokens(line)
	line = strings.TrimSpace(spaceCollapsePattern.ReplaceAllString(line, " "))
	if line == "" {
		return nil
	}

	// Step 6: reject generic bucket words; split spice conjunctions
	if bucketWords[line] {
		return nil
	}
	phrases := splitSpiceConjunction(line)

	// Steps 7-8: synonym collapse, trim, dedupe
	var tokens []string
	seen := make(map[string]bool)
	for _, phrase := range phrases {
		phrase = strings.TrimSpace(phrase)
		if phrase == "" || bucketWords[phrase] {
			continue
		}
		if canonical, ok := synonymMap[phrase]; ok {
			phrase = canonical
		}
		if digitBearingPattern.MatchString(phrase) && isAllNumeric(phrase) {
			continue
		}
		if !seen[phrase] {
			seen[phrase] = true
			tokens = append(tokens, phrase)
		}
	}

	return tokens
}

// stripLeadingQuantities removes quantity and unit tokens from the front of
// the line ("1 can chickpeas" -> "chickpeas", "2 tbsp of honey" -> "honey")
func stripLeadingQuantities(line string) string {
	words := strings.Fields(line)
	i := 0
	for i < len(words) {
		w := strings.Trim(words[i], ",.")
		if quantityPattern.MatchString(w) || measurementUnits[w] || w == "of" {
			i++
			continue
		}
		break
	}
	return strings.Join(words[i:], " ")
}

// stripModifierTails removes comma-separated suffixes made up entirely of
// preparation modifiers and connectors ("chickpeas, drained and rinsed")
func stripModifierTails(line string) string {
	parts := strings.Split(line, ",")
	kept := parts[:1]
	for _, part := range parts[1:] {
		if isModifierPhrase(part) {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, ",")
}

// isModifierPhrase reports whether every word in the phrase is a preparation
// modifier or connector
func isModifierPhrase(phrase string) bool {
	words := strings.Fields(strings.TrimSpace(phrase))
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		w = strings.Trim(w, ".")
		if !preparationModifiers[w] && !connectorWords[w] {
			return false
		}
	}
	return true
}

// stripNoiseTokens drops standalone modifiers, unit words, quantity-led
// tokens, and the "to taste" idiom from anywhere in the line
func stripNoiseTokens(line string) string {
	line = strings.ReplaceAll(line, " to taste", " ")
	line = strings.ReplaceAll(line, ",", " ")

	words := strings.Fields(line)
	var kept []string
	for _, w := range words {
		w = strings.Trim(w, ".;:")
		if w == "" {
			continue
		}
		if preparationModifiers[w] || measurementUnits[w] {
			continue
		}
		if leadingQuantityPattern.MatchString(w) {
			continue
		}
		kept = append(kept, w)
	}

	// Connectors stranded at either end ("and pepper", "salt and") are noise
	for len(kept) > 0 && connectorWords[kept[0]] {
		kept = kept[1:]
	}
	for len(kept) > 0 && connectorWords[kept[len(kept)-1]] {
		kept = kept[:len(kept)-1]
	}

	return strings.Join(kept, " ")
}

// splitSpiceConjunction splits "salt and pepper" style phrases into separate
// tokens when both sides are known spices. Anything else passes through
// unchanged as a single phrase.
func splitSpiceConjunction(line string) []string {
	idx := strings.Index(line, " and ")
	if idx < 0 {
		return []string{line}
	}
	left := strings.TrimSpace(line[:idx])
	right := strings.TrimSpace(line[idx+len(" and "):])
	if knownSpices[left] && knownSpices[right] {
		return []string{left, right}
	}
	return []string{line}
}

// isAllNumeric reports whether the phrase contains no letters at all
func isAllNumeric(phrase string) bool {
	for _, r := range phrase {
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}
