// Package csv reads and writes application catalogs as CSV files with
// Chinese column headers.
package csv

import (
	"strings"

	"github.com/fwojciec/appcat"
)

// Column headers.
const (
	ColumnName            = "名称"
	ColumnPlatforms       = "平台"
	ColumnRating          = "评分"
	ColumnPrice           = "官方订阅价格"
	ColumnDescription     = "功能描述"
	ColumnOfficialWebsite = "官方网站"
	ColumnSourceLink      = "Setapp链接"
)

// field identifies a Record field.
type field int

const (
	fieldName field = iota
	fieldPlatforms
	fieldRating
	fieldPrice
	fieldDescription
	fieldOfficialWebsite
	fieldSourceLink
)

var (
	fullColumns = []field{
		fieldName, fieldPlatforms, fieldRating, fieldPrice,
		fieldDescription, fieldOfficialWebsite, fieldSourceLink,
	}
	minimalColumns = []field{
		fieldName, fieldPlatforms, fieldOfficialWebsite, fieldDescription,
	}
)

var headers = map[field]string{
	fieldName:            ColumnName,
	fieldPlatforms:       ColumnPlatforms,
	fieldRating:          ColumnRating,
	fieldPrice:           ColumnPrice,
	fieldDescription:     ColumnDescription,
	fieldOfficialWebsite: ColumnOfficialWebsite,
	fieldSourceLink:      ColumnSourceLink,
}

// aliases maps lowercased header spellings to fields.
var aliases = map[string]field{
	"名称":               fieldName,
	"name":             fieldName,
	"平台":               fieldPlatforms,
	"platform":         fieldPlatforms,
	"platforms":        fieldPlatforms,
	"评分":               fieldRating,
	"rating":           fieldRating,
	"官方订阅价格":           fieldPrice,
	"价格":               fieldPrice,
	"price":            fieldPrice,
	"功能描述":             fieldDescription,
	"描述":               fieldDescription,
	"description":      fieldDescription,
	"官方网站":             fieldOfficialWebsite,
	"官网":               fieldOfficialWebsite,
	"website":          fieldOfficialWebsite,
	"official website": fieldOfficialWebsite,
	"official_website": fieldOfficialWebsite,
	"setapp链接":         fieldSourceLink,
	"setapp link":      fieldSourceLink,
	"source link":      fieldSourceLink,
	"source_link":      fieldSourceLink,
	"link":             fieldSourceLink,
}

// columns returns the field order for layout.
func columns(layout appcat.Layout) ([]field, error) {
	switch layout {
	case appcat.LayoutFull, "":
		return fullColumns, nil
	case appcat.LayoutMinimal:
		return minimalColumns, nil
	default:
		return nil, appcat.Errorf(appcat.EINVALID, "unknown layout %q", layout)
	}
}

func get(r *appcat.Record, f field) string {
	switch f {
	case fieldName:
		return r.Name
	case fieldPlatforms:
		return r.Platforms
	case fieldRating:
		return r.Rating
	case fieldPrice:
		return r.Price
	case fieldDescription:
		return r.Description
	case fieldOfficialWebsite:
		return r.OfficialWebsite
	case fieldSourceLink:
		return r.SourceLink
	}
	return ""
}

func set(r *appcat.Record, f field, v string) {
	switch f {
	case fieldName:
		r.Name = v
	case fieldPlatforms:
		r.Platforms = v
	case fieldRating:
		r.Rating = v
	case fieldPrice:
		r.Price = v
	case fieldDescription:
		r.Description = v
	case fieldOfficialWebsite:
		r.OfficialWebsite = v
	case fieldSourceLink:
		r.SourceLink = v
	}
}

// lookupHeader resolves a header cell to a field.
func lookupHeader(h string) (field, bool) {
	f, ok := aliases[strings.ToLower(strings.TrimSpace(h))]
	return f, ok
}
