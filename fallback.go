package appcat

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
)

// GuessWebsite synthesizes a placeholder official website from an
// application's display name: lowercase, everything outside [a-z0-9]
// removed, wrapped as https://www.<name>.com. Returns "" when nothing
// usable remains.
func GuessWebsite(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return "https://www." + sb.String() + ".com"
}

// descriptionTemplate is a fallback description chosen when any keyword
// occurs in the lowercased application name.
type descriptionTemplate struct {
	keywords []string
	format   string
}

var descriptionTemplates = []descriptionTemplate{
	{keywords: []string{"clean"}, format: "%s - 专业的系统清理和优化工具，帮助您保持Mac运行流畅"},
	{keywords: []string{"photo", "image"}, format: "%s - 强大的图片编辑和管理工具，提升您的创作效率"},
	{keywords: []string{"text", "write"}, format: "%s - 专业的文本编辑和写作工具，让创作更加高效"},
	{keywords: []string{"task", "todo"}, format: "%s - 智能的任务管理和待办事项工具，提升工作效率"},
}

const defaultDescriptionFormat = "%s - 专业的Mac应用程序，为您的工作和生活带来便利"

// FallbackDescription returns a placeholder description for an application
// whose page could not be fetched. The template is picked by matching the
// name against the clean, photo, text and task categories in that order.
func FallbackDescription(name string) string {
	lower := strings.ToLower(name)
	for _, tmpl := range descriptionTemplates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(lower, kw) {
				return fmt.Sprintf(tmpl.format, name)
			}
		}
	}
	return fmt.Sprintf(defaultDescriptionFormat, name)
}

// NameFromSlug derives a display name from a URL slug:
// "clean-my-mac" becomes "Clean My Mac" and "boom-3d" becomes "Boom 3D".
// A letter is uppercased when it does not follow another letter.
func NameFromSlug(slug string) string {
	s := strings.ReplaceAll(strings.Trim(slug, "/"), "-", " ")

	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		if isLetter && !prevLetter {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
		prevLetter = isLetter
	}
	return sb.String()
}

// FallbackRecord synthesizes a record from the application reference alone.
// Used when every fetch attempt for the page failed.
func FallbackRecord(app AppRef) *Record {
	return &Record{
		Name:            app.Name,
		Platforms:       DefaultPlatform,
		Description:     FallbackDescription(app.Name),
		OfficialWebsite: GuessWebsite(app.Name),
		SourceLink:      app.URL,
	}
}

// PriceOptions are the subscription prices placeholder data is drawn from.
var PriceOptions = []float64{0, 2.99, 4.99, 9.99, 14.99, 19.99, 29.99, 39.99, 49.99, 59.99, 79.99, 99.99, 149.99}

// Placeholder fabricates ratings and prices for records the source did not
// provide them for. It is not safe for concurrent use.
type Placeholder struct {
	rnd       *rand.Rand
	minRating int
	maxRating int
}

// NewPlaceholder returns a Placeholder drawing from rnd with ratings in
// [80, 95].
func NewPlaceholder(rnd *rand.Rand) *Placeholder {
	return &Placeholder{rnd: rnd, minRating: 80, maxRating: 95}
}

// Rating returns a rating in the configured inclusive range.
func (p *Placeholder) Rating() string {
	return strconv.Itoa(p.minRating + p.rnd.IntN(p.maxRating-p.minRating+1))
}

// Price returns one of PriceOptions formatted without trailing zeros.
func (p *Placeholder) Price() string {
	price := PriceOptions[p.rnd.IntN(len(PriceOptions))]
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// Fill sets Rating and Price on r when they are empty.
func (p *Placeholder) Fill(r *Record) {
	if r.Rating == "" {
		r.Rating = p.Rating()
	}
	if r.Price == "" {
		r.Price = p.Price()
	}
}
