package models

// Category groups catalog entries for display.
// Categories are regenerated wholesale by the ingestion pipeline; ids are
// stable across runs because they derive from the source ordinal and title.
type Category struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	DisplayOrder int    `json:"displayOrder" validate:"required,gt=0"`
}

// Validate checks the category against the schema rules.
func (c *Category) Validate() error {
	return validate.Struct(c)
}
