// Package pagination normalizes limit/offset windows for list endpoints and
// computes the metadata block returned alongside paginated responses.
package pagination

const (
	DefaultLimit = 20  // Applied when the client omits limit / Appliqué quand le client omet limit
	MaxLimit     = 100 // Upper bound to keep response sizes bounded / Borne supérieure pour limiter la taille des réponses
)

// Page is a normalized pagination window / Fenêtre de pagination normalisée
type Page struct {
	Limit  int
	Offset int
}

// Meta is the pagination block attached to list responses / Bloc de pagination attaché aux réponses de liste
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// Normalize applies defaults and clamps the window. Zero values mean "absent":
// limit defaults to DefaultLimit and is clamped to MaxLimit, negative offsets
// are reset to 0.
// Applique les valeurs par défaut et borne la fenêtre.
func Normalize(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// NewMeta computes pagination metadata for a window over total rows
// Calcule les métadonnées de pagination pour une fenêtre sur total lignes
func NewMeta(page Page, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasNext: page.Offset+page.Limit < total,
		HasPrev: page.Offset > 0,
	}
}
