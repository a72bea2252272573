package usecase

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Noise phrases erased from titles, applied in order on the output of the previous pass.
// Word-like phrases carry \b so model names containing them survive ("Wholesale", "Chargers").
var noisePatterns = compileAll(
	`(?i)\bPTA\s*Approved?\b`,
	`(?i)\bOfficial\s*Warranty\b`,
	`(?i)\bFast\s*Shipping\b`,
	`(?i)\bCash\s*on\s*Delivery\b`,
	`(?i)\bFree\s*Delivery\b`,
	`(?i)\bInstallments?\b`,
	`(?i)\bEasy\s*Payment\b`,
	`(?i)\bOriginal\b`,
	`(?i)\bAuthentic\b`,
	`(?i)\bNew\b`,
	`(?i)\bSealed\b`,
	`(?i)\bIn\s*Stock\b`,
	`(?i)\bAvailable\b`,
	`(?i)\bLimited\s*Stock\b`,
	`(?i)\bHot\s*Deal\b`,
	`(?i)\bSale\b`,
	`(?i)\bDiscount(?:ed)?\b`,
	`(?i)\b\d+%\s*Off\b`,
	`(?i)\bSpecial\s*Offer\b`,
	`(?i)(?:₹|\bRs\b\.?|\bPKR\b)(?:\s*\d[\d,]*(?:\.\d+)?\b)?`,
	`[⭐★☆✓✔✅🔥\x{FE0F}]+`,
	`\|`,
	`•`,
)

var (
	multiSpacePattern   = regexp.MustCompile(`\s+`)
	separatorPattern    = regexp.MustCompile(`[|•\-_]+`)
	parenthesisPattern  = regexp.MustCompile(`\([^)]*\)`)
	spacedUnitPattern   = regexp.MustCompile(`(?i)\b(\d+)\s+(GB|TB)\b`)
	slashRAMPattern     = regexp.MustCompile(`(?i)\b(\d{1,2})\s*/\s*(\d+(?:GB|TB))\b`)
	capacityPairPattern = regexp.MustCompile(`(?i)\b(\d+(?:GB|TB))\s*[/+]\s*(\d)`)

	capacityToken  = regexp.MustCompile(`(?i)^(\d+)(GB|TB)$`)
	modelToken     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.+]*$`)
	processorToken = regexp.MustCompile(`(?i)^(i[3579]|m[1-4]|ryzen[3579])$`)
	ryzenToken     = regexp.MustCompile(`(?i)^ryzen$`)
	ryzenTierToken = regexp.MustCompile(`^[3579]$`)
	ordinalToken   = regexp.MustCompile(`(?i)^\d+(st|nd|rd|th)$`)

	laptopRAMPattern     = regexp.MustCompile(`(?i)\b(\d+)\s*(GB)\s*RAM\b`)
	laptopStoragePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(GB|TB)\s*(?:SSD|HDD|Storage)\b`)
)

// maxModelTokens bounds the greedy model span
const maxModelTokens = 6

// junkWords end the model span; they and everything after are dropped
var junkWords = map[string]bool{
	"with":     true,
	"and":      true,
	"for":      true,
	"official": true,
	"factory":  true,
}

// categoryWords are skipped inside the model span
var categoryWords = map[string]bool{
	"laptop":     true,
	"notebook":   true,
	"mobile":     true,
	"smartphone": true,
	"phone":      true,
}

// Words labelling the capacity token right before them
var (
	ramLabels     = map[string]bool{"ram": true}
	storageLabels = map[string]bool{"rom": true, "ssd": true, "hdd": true, "storage": true, "emmc": true}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// PatternExtractor is the deterministic, rule-based title cleaner
type PatternExtractor struct {
	logger             zerolog.Logger
	enableDebugLogging bool
}

// NewPatternExtractor creates a new pattern extractor
func NewPatternExtractor(logger zerolog.Logger, enableDebugLogging bool) *PatternExtractor {
	return &PatternExtractor{
		logger:             logger.With().Str("component", "pattern_extractor").Logger(),
		enableDebugLogging: enableDebugLogging,
	}
}

// CleanWithPatterns strips marketplace noise and rebuilds the title as
// "Brand Model [Processor] RAM Storage" when a known brand is found.
// It never fails; with no brand match the noise-stripped title is returned.
func (p *PatternExtractor) CleanWithPatterns(title string) string {
	// Step 1: Erase noise phrases, one pattern at a time
	cleaned := title
	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	// Step 2: Normalize whitespace and separators, drop parenthesized content
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = separatorPattern.ReplaceAllString(cleaned, " ")
	cleaned = parenthesisPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	// Step 3: Category-specific extraction, mobile first then laptop
	for _, category := range brandCatalog {
		brand, tail, ok := category.match(cleaned)
		if !ok {
			continue
		}
		spec := extractSpec(tail, category.WithProcessor)
		spec.brand = brand
		if category.WithProcessor {
			spec.fillFromKeywords(cleaned)
		}
		cleaned = spec.String()
	}

	// Step 4: Final normalization
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if p.enableDebugLogging {
		p.logger.Debug().Str("input", title).Str("output", cleaned).Msg("regex cleaned")
	}

	return cleaned
}

// productSpec holds the fields rebuilt from a matched title
type productSpec struct {
	brand      string
	model      []string
	processor  string
	generation string
	ram        string
	storage    string
}

// String joins the non-empty fields in output order
func (s productSpec) String() string {
	parts := []string{s.brand}
	parts = append(parts, s.model...)
	parts = append(parts, s.processor, s.generation, s.ram, s.storage)

	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}

// extractSpec walks the text following a brand: model span, optional processor
// and generation, then up to two capacity tokens.
func extractSpec(tail string, withProcessor bool) productSpec {
	tokens := strings.Fields(normalizeCapacities(tail))
	var spec productSpec

	i := 0
	for ; i < len(tokens) && len(spec.model) < maxModelTokens; i++ {
		tok := strings.TrimRight(tokens[i], ",;:")
		lower := strings.ToLower(tok)
		if junkWords[lower] || capacityToken.MatchString(tok) || !modelToken.MatchString(tok) {
			break
		}
		if withProcessor && isProcessorStart(tokens, i) {
			break
		}
		if categoryWords[lower] {
			continue
		}
		spec.model = append(spec.model, tok)
	}

	if withProcessor && i < len(tokens) && isProcessorStart(tokens, i) {
		if ryzenToken.MatchString(tokens[i]) {
			spec.processor = tokens[i] + " " + tokens[i+1]
			i += 2
		} else {
			spec.processor = tokens[i]
			i++
		}
		if i+1 < len(tokens) && ordinalToken.MatchString(tokens[i]) && strings.EqualFold(tokens[i+1], "Gen") {
			spec.generation = tokens[i] + " " + tokens[i+1]
			i += 2
		}
	}

	for captured := 0; captured < 2 && i < len(tokens); captured++ {
		m := capacityToken.FindStringSubmatch(strings.TrimRight(tokens[i], ",;:"))
		if m == nil {
			break
		}
		value := m[1] + strings.ToUpper(m[2])
		i++

		label := ""
		if i < len(tokens) {
			label = strings.ToLower(strings.TrimRight(tokens[i], ",;:"))
		}
		switch {
		case ramLabels[label]:
			// an earlier unlabelled capacity was storage after all
			if spec.ram != "" && spec.storage == "" {
				spec.storage = spec.ram
			}
			spec.ram = value
			i++
		case storageLabels[label] && spec.storage == "":
			spec.storage = value
			i++
		case spec.ram == "":
			spec.ram = value
		case spec.storage == "":
			spec.storage = value
		}
	}

	return spec
}

// fillFromKeywords uses "8GB RAM" / "512GB SSD" phrases anywhere in s for
// fields the template walk did not capture.
func (s *productSpec) fillFromKeywords(text string) {
	if s.ram == "" {
		if m := laptopRAMPattern.FindStringSubmatch(text); m != nil {
			if value := m[1] + strings.ToUpper(m[2]); value != s.storage {
				s.ram = value
			}
		}
	}
	if s.storage == "" {
		if m := laptopStoragePattern.FindStringSubmatch(text); m != nil {
			if value := m[1] + strings.ToUpper(m[2]); value != s.ram {
				s.storage = value
			}
		}
	}
}

// isProcessorStart reports whether tokens[i] begins a CPU designation
func isProcessorStart(tokens []string, i int) bool {
	if processorToken.MatchString(tokens[i]) {
		return true
	}
	return ryzenToken.MatchString(tokens[i]) && i+1 < len(tokens) && ryzenTierToken.MatchString(tokens[i+1])
}

// normalizeCapacities rewrites "8 GB" as "8GB" and splits "8GB/256GB", "8GB+256GB"
// and "8/256GB" into separate tokens.
func normalizeCapacities(s string) string {
	s = spacedUnitPattern.ReplaceAllString(s, "${1}${2}")
	s = slashRAMPattern.ReplaceAllString(s, "${1}GB ${2}")
	s = capacityPairPattern.ReplaceAllString(s, "${1} ${2}")
	return s
}
