package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"catalog-migrate/internal/model"
	"catalog-migrate/internal/table"
)

// typeRule maps a lowercase keyword to a display product type. Rules are
// evaluated in order and the first hit wins, so specific phrases must stay
// ahead of their generic substrings ("business card" before "card").
type typeRule struct {
	keyword string
	ptype   string
}

var typeRules = []typeRule{
	{"envelope", "Envelope"},
	{"business card", "Business Card"},
	{"appointment card", "Appointment Card"},
	{"qr code", "QR Code Card"},
	{"review card", "Review Card"},
	{"card", "Card"},
	{"flier", "Flier"},
	{"flyer", "Flyer"},
	{"brochure", "Brochure"},
	{"letterhead", "Letterhead"},
	{"registration", "Registration Form"},
	{"form", "Form"},
	{"letter", "Letter"},
	{"sales aid", "Sales Aid"},
	{"postcard", "Postcard"},
	{"booklet", "Booklet"},
	{"poster", "Poster"},
	{"label", "Label"},
	{"sticker", "Sticker"},
	{"lanyard", "Lanyard"},
	{"badge", "Badge"},
	{"sign", "Sign"},
	{"banner", "Banner"},
	{"handout", "Handout"},
	{"presentation", "Presentation"},
	{"folder", "Folder"},
	{"notepad", "Notepad"},
	{"pen", "Pen"},
	{"gift", "Gift"},
	{"merchandise", "Merchandise"},
}

// keywordRule expands a product-type keyword into related search terms.
// Ordered, first match wins.
type keywordRule struct {
	keyword string
	terms   []string
}

var keywordRules = []keywordRule{
	{"envelope", []string{"envelope", "mailing", "stationery"}},
	{"business card", []string{"business card", "card", "networking", "contact"}},
	{"appointment card", []string{"appointment card", "reminder"}},
	{"qr code", []string{"qr code", "review", "feedback"}},
	{"card", []string{"card"}},
	{"flier", []string{"flier", "flyer", "marketing", "promotional"}},
	{"brochure", []string{"brochure", "marketing", "informational"}},
	{"letterhead", []string{"letterhead", "stationery", "correspondence"}},
	{"registration", []string{"registration", "form"}},
	{"form", []string{"form", "document"}},
	{"letter", []string{"letter", "correspondence"}},
	{"sales aid", []string{"sales aid", "marketing", "sales tool"}},
	{"postcard", []string{"postcard", "mailing", "marketing"}},
	{"booklet", []string{"booklet", "guide"}},
	{"poster", []string{"poster", "signage", "display"}},
	{"label", []string{"label", "sticker"}},
	{"lanyard", []string{"lanyard", "badge holder"}},
	{"sign", []string{"sign", "signage"}},
	{"banner", []string{"banner", "display"}},
	{"handout", []string{"handout", "informational"}},
}

var specPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\.?\d*\s*["']?\s*x\s*\d+\.?\d*\s*["']?`),
	regexp.MustCompile(`(?i)\d+\s*sided?`),
	regexp.MustCompile(`(?i)Updated \d{1,2}/\d{4}`),
	regexp.MustCompile(`(?i)Updated \d{1,2}-\d{1,2}-\d{4}`),
}

var (
	statePattern = regexp.MustCompile(`\b[A-Z]{2}\b`)
	cityPattern  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

// Capitalized words that look like place names but are not
var locationFalsePositives = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true,
	"To": true, "For": true, "With": true, "And": true, "Or": true,
}

// Store-name words that carry no search value
var storeStopwords = map[string]bool{
	"online": true, "print": true, "portal": true, "store": true,
	"ordering": true, "the": true, "a": true, "an": true,
}

// cleanText strips surrounding quotes and doubled quote escapes
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}

// extractSpecs pulls size/spec substrings (dimensions, "sided", update dates)
func extractSpecs(text string) []string {
	if text == "" {
		return nil
	}
	var specs []string
	for _, p := range specPatterns {
		specs = append(specs, p.FindAllString(text, -1)...)
	}
	return specs
}

// extractLocations detects state abbreviations and capitalized city names,
// deduplicated in first-appearance order.
func extractLocations(text string) []string {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool)
	var locations []string
	add := func(loc string) {
		if !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
	}
	for _, s := range statePattern.FindAllString(text, -1) {
		add(s)
	}
	for _, c := range cityPattern.FindAllString(text, -1) {
		if locationFalsePositives[c] || looksLikeProductType(c) {
			continue
		}
		add(c)
	}
	return locations
}

// looksLikeProductType filters capitalized phrases that are really product
// wording ("Business Card"), which would otherwise win over the actual place
// name.
func looksLikeProductType(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, r := range typeRules {
		if strings.Contains(lower, r.keyword) {
			return true
		}
	}
	return false
}

// productType resolves the display type, checking the name before the
// category path.
func productType(name, categories string) string {
	nameLower := strings.ToLower(name)
	for _, r := range typeRules {
		if strings.Contains(nameLower, r.keyword) {
			return r.ptype
		}
	}
	categoriesLower := strings.ToLower(categories)
	for _, r := range typeRules {
		if strings.Contains(categoriesLower, r.keyword) {
			return r.ptype
		}
	}
	return ""
}

// GenerateTitle builds the bounded-length display title for one record
func GenerateTitle(row table.Row, cfg model.SEOConfig) string {
	name := cleanText(row["Name"])
	briefDesc := cleanText(row["BriefDescription"])
	longDesc := cleanText(row["LongDescription"])
	categories := cleanText(row["StoreFront/Categories"])
	storeName := cleanText(row[colStoreName])

	ptype := productType(name, categories)
	locations := extractLocations(name)

	specs := extractSpecs(name)
	specs = append(specs, extractSpecs(briefDesc)...)
	specs = append(specs, extractSpecs(longDesc)...)

	var parts []string
	if ptype != "" {
		parts = append(parts, ptype)
	} else if words := meaningfulWords(name); len(words) > 0 {
		parts = append(parts, strings.Join(words, " "))
	}

	if len(locations) > 0 {
		parts = append(parts, "- "+locations[0])
	}

	if len(specs) > 0 {
		spec := strings.TrimSpace(specs[0])
		if spec != "" && !strings.Contains(spec, "Updated") && len(spec) < 30 {
			parts = append(parts, "("+spec+")")
		}
	}

	if storeName != "" {
		parts = append(parts, "| "+storeName)
	}

	// Nothing extracted beyond the type: fall back to the raw name
	if len(parts) <= 1 {
		if storeName != "" {
			return truncateTitle(name+" | "+storeName, cfg.TitleLimit)
		}
		return truncateTitle(name, cfg.TitleLimit)
	}

	return truncateTitle(strings.Join(parts, " "), cfg.TitleLimit)
}

func truncateTitle(title string, limit int) string {
	if limit <= 0 {
		limit = 70
	}
	if len(title) > limit {
		return title[:limit-3] + "..."
	}
	return title
}

// meaningfulWords takes up to three of the first five name words, skipping
// leading articles.
func meaningfulWords(name string) []string {
	fields := strings.Fields(name)
	if len(fields) > 5 {
		fields = fields[:5]
	}
	var words []string
	for _, w := range fields {
		switch strings.ToLower(w) {
		case "the", "a", "an":
			continue
		}
		words = append(words, w)
		if len(words) == 3 {
			break
		}
	}
	return words
}

// GenerateKeywords builds the comma-separated keyword string for one record,
// truncated at a keyword boundary.
func GenerateKeywords(row table.Row, cfg model.SEOConfig) string {
	name := cleanText(row["Name"])
	briefDesc := cleanText(row["BriefDescription"])
	categories := cleanText(row["StoreFront/Categories"])
	storeName := cleanText(row[colStoreName])

	keywords := make(map[string]bool)

	for _, loc := range extractLocations(name) {
		keywords[strings.ToLower(loc)] = true
	}

	nameLower := strings.ToLower(name)
	for _, r := range keywordRules {
		if strings.Contains(nameLower, r.keyword) {
			for _, term := range r.terms {
				keywords[term] = true
			}
			break
		}
	}

	if categories != "" {
		for _, part := range strings.Split(categories, "/") {
			part = strings.TrimSpace(part)
			if len(part) > 2 {
				keywords[strings.ToLower(part)] = true
			}
		}
	}

	if strings.Contains(nameLower, "spanish") || strings.Contains(nameLower, "español") {
		keywords["spanish"] = true
	}

	specs := extractSpecs(briefDesc)
	if len(specs) > 2 {
		specs = specs[:2]
	}
	for _, spec := range specs {
		if strings.Contains(spec, "Updated") {
			continue
		}
		clean := strings.TrimSpace(spec)
		clean = strings.ReplaceAll(clean, `"`, "inch")
		clean = strings.ReplaceAll(clean, `'`, "inch")
		if clean != "" && len(clean) < 20 {
			keywords[strings.ToLower(clean)] = true
		}
	}

	if storeName != "" {
		for _, w := range strings.Fields(strings.ToLower(storeName)) {
			if storeStopwords[w] || stopword(w, cfg.ExtraStopwords) {
				continue
			}
			keywords[w] = true
		}
	}

	list := make([]string, 0, len(keywords))
	for k := range keywords {
		list = append(list, k)
	}
	sort.Strings(list)
	return truncateKeywords(strings.Join(list, ", "), cfg.KeywordLimit)
}

func stopword(w string, extra []string) bool {
	for _, s := range extra {
		if w == s {
			return true
		}
	}
	return false
}

// truncateKeywords cuts at the limit, then backs up to the last comma so no
// keyword is ever split mid-word.
func truncateKeywords(s string, limit int) string {
	if limit <= 0 {
		limit = 500
	}
	if len(s) <= limit {
		return s
	}
	s = s[:limit]
	if last := strings.LastIndex(s, ","); last > 0 {
		s = s[:last]
	}
	return s
}

// GenerateSEO derives SEOTitle and KeyWords for every record
func GenerateSEO(log *RunLog, inputCSV, outputCSV string, cfg model.SEOConfig) error {
	log.Banner("SEO GENERATOR")

	log.Infof("Reading CSV: %s", inputCSV)
	t, err := table.Read(inputCSV)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d products", len(t.Rows))

	if !t.HasColumn("Name") {
		return fmt.Errorf("missing required column: Name; available columns: %v", t.Columns)
	}

	t.EnsureColumn("SEOTitle")
	t.EnsureColumn("KeyWords")

	log.Infof("Generating SEO data for %d products...", len(t.Rows))
	for _, row := range t.Rows {
		row["SEOTitle"] = GenerateTitle(row, cfg)
		row["KeyWords"] = GenerateKeywords(row, cfg)
	}

	// Sample output for eyeballing the result
	log.Infof("Sample SEO data generated:")
	for i, row := range t.Rows {
		if i >= 5 {
			break
		}
		log.Infof("  %-40.40s", cleanText(row["Name"]))
		log.Infof("    SEO Title: %s", row["SEOTitle"])
		log.Infof("    Keywords:  %.60s...", row["KeyWords"])
	}

	if err := t.Write(outputCSV); err != nil {
		return err
	}

	log.Banner("SEO GENERATION COMPLETE")
	log.Infof("Output saved to: %s", outputCSV)
	log.Infof("Total products processed: %d", len(t.Rows))
	return nil
}
