package sanitizer

import (
	"regexp"
	"strings"

	"assetbook/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControlChars  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	reTrailingSpace = regexp.MustCompile(`[ \t]+\n`)
	reBlankLines    = regexp.MustCompile(`\n{3,}`)
)

func stripControl(s string) string {
	return reControlChars.ReplaceAllString(s, "")
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// SanitizeDescription keeps line breaks but drops control characters, trailing
// blanks and runs of more than one empty line.
func SanitizeDescription(input string) string {
	p := Pipeline{
		normalizeNewlines,
		stripControl,
		func(s string) string { return reTrailingSpace.ReplaceAllString(s, "\n") },
		func(s string) string { return reBlankLines.ReplaceAllString(s, "\n\n") },
		strings.TrimSpace,
	}
	return p.Apply(input)
}

// SanitizeName collapses whitespace to single spaces.
func SanitizeName(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
	}
	return p.Apply(input)
}

// SanitizeForm normalizes the free-text fields of form in place. Custodian and
// date values are left for the validator to judge.
func SanitizeForm(form *model.BookingForm) {
	if form == nil {
		return
	}
	form.ID = strings.TrimSpace(form.ID)
	form.Name = SanitizeName(form.Name)
	form.Description = SanitizeDescription(form.Description)
	form.Custodian = strings.TrimSpace(form.Custodian)
	form.StartDate = strings.TrimSpace(form.StartDate)
	form.EndDate = strings.TrimSpace(form.EndDate)
	if form.AssetIDs != nil {
		form.AssetIDs = NormalizeIDs(form.AssetIDs)
	}
}
