package usecase

import (
	"regexp"
	"strings"
)

// Product categories scanned by the pattern extractor, in scan order
const (
	CategoryMobile = "mobile"
	CategoryLaptop = "laptop"
)

// BrandTemplate pairs a brand name with the pattern that locates it in a title.
// Group 1 captures the brand as written, group 2 the remainder of the title.
type BrandTemplate struct {
	Brand   string
	Pattern *regexp.Regexp
}

// CategoryTemplates is an ordered brand list for one category.
// The first brand whose pattern matches wins; there is no scoring.
type CategoryTemplates struct {
	Category string
	// WithProcessor enables the CPU token (i5, Ryzen 7, M2) after the model span
	WithProcessor bool
	Templates     []BrandTemplate
}

var mobileBrands = []string{
	"Samsung", "iPhone", "Xiaomi", "Oppo", "Vivo", "Realme",
	"Infinix", "Tecno", "OnePlus", "Google", "Nokia", "Huawei", "Motorola",
}

var laptopBrands = []string{
	"HP", "Dell", "Lenovo", "Asus", "Acer", "MSI", "Apple", "MacBook",
}

// brandCatalog is compiled once at package init and never mutated
var brandCatalog = []CategoryTemplates{
	newCategoryTemplates(CategoryMobile, false, mobileBrands),
	newCategoryTemplates(CategoryLaptop, true, laptopBrands),
}

func newCategoryTemplates(category string, withProcessor bool, brands []string) CategoryTemplates {
	templates := make([]BrandTemplate, 0, len(brands))
	for _, brand := range brands {
		templates = append(templates, BrandTemplate{
			Brand:   brand,
			Pattern: regexp.MustCompile(`(?i)\b(` + regexp.QuoteMeta(brand) + `)\b\s+(\S.*)$`),
		})
	}
	return CategoryTemplates{
		Category:      category,
		WithProcessor: withProcessor,
		Templates:     templates,
	}
}

// BrandCatalog returns a copy of the ordered category table
func BrandCatalog() []CategoryTemplates {
	out := make([]CategoryTemplates, len(brandCatalog))
	for i, c := range brandCatalog {
		out[i] = c
		out[i].Templates = append([]BrandTemplate(nil), c.Templates...)
	}
	return out
}

// Brands returns the brand names of a category in scan order
func Brands(category string) []string {
	for _, c := range brandCatalog {
		if c.Category != category {
			continue
		}
		names := make([]string, len(c.Templates))
		for i, t := range c.Templates {
			names[i] = t.Brand
		}
		return names
	}
	return nil
}

// match returns the first template in the category that matches s
func (c CategoryTemplates) match(s string) (brand, tail string, ok bool) {
	for _, t := range c.Templates {
		if m := t.Pattern.FindStringSubmatch(s); m != nil {
			return m[1], strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}
