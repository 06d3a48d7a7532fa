package appcat

import "context"

// Record is one application's normalized field set.
type Record struct {
	Name            string `json:"name"`
	Platforms       string `json:"platforms"`
	Description     string `json:"description"`
	Rating          string `json:"rating"`
	Price           string `json:"price"`
	OfficialWebsite string `json:"officialWebsite"`
	SourceLink      string `json:"sourceLink"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Name == "" {
		return Errorf(EINVALID, "record name required")
	}
	return nil
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// Layout selects the CSV column set used when writing records.
type Layout string

// Supported column layouts.
const (
	// LayoutFull writes every field (name, platforms, rating, price,
	// description, official website, source link).
	LayoutFull Layout = "full"
	// LayoutMinimal writes name, platforms, official website and description.
	LayoutMinimal Layout = "minimal"
)

// CatalogWriter persists a record sequence as a single unit. Implementations
// must leave either a complete catalog or nothing at the destination.
type CatalogWriter interface {
	WriteRecords(ctx context.Context, path string, layout Layout, records []*Record) error
}

// CatalogReader loads a record sequence written by a CatalogWriter.
// Returns ENOTFOUND if the catalog does not exist.
type CatalogReader interface {
	ReadRecords(ctx context.Context, path string) ([]*Record, error)
}
