package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/types"
)

// extractExpertise parses the areas-of-expertise, skills and languages
// panels. These render on the main profile view without a tab of their
// own, so activation is not needed.
func (e *Extractor) extractExpertise(ctx context.Context) SectionResult[types.ExpertiseProfile] {
	doc, err := e.pageDocument(ctx)
	if err != nil {
		return TimedOut[types.ExpertiseProfile]()
	}
	if doc.Find(selExpertiseSection).Length() == 0 &&
		doc.Find(selSkillsSection).Length() == 0 &&
		doc.Find(selLanguagesSection).Length() == 0 {
		return Absent[types.ExpertiseProfile]()
	}
	return Present(parseExpertise(doc))
}

func parseExpertise(doc *goquery.Document) types.ExpertiseProfile {
	var p types.ExpertiseProfile

	doc.Find(selExpertiseSection).Find(selAreaTitle).Each(func(_ int, s *goquery.Selection) {
		p.AreasOfExpertise = append(p.AreasOfExpertise, strings.TrimSpace(s.Text()))
	})
	doc.Find(selSkillsSection).Find(selAreaTitle).Each(func(_ int, s *goquery.Selection) {
		p.Skills = append(p.Skills, strings.TrimSpace(s.Text()))
	})
	doc.Find(selLanguagesSection).Find(selLanguageName).Each(func(_ int, s *goquery.Selection) {
		name, ok := FieldText(s, ".sf-text-secondary")
		if !ok {
			return
		}
		level, ok := FieldText(s, ".sf-lang-item")
		if !ok {
			level = naSentinel
		}
		p.Languages = append(p.Languages, types.Language{Language: name, Level: level})
	})

	return p
}
