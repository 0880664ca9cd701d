package domain

import "time"

// Resource represents the managed domain entity / Représente l'entité du domaine gérée
type Resource struct {
	ID          int64
	Name        string
	Description string
	Category    string // Optional grouping label, empty when unset / Label de regroupement optionnel, vide si absent
	IsActive    bool
	CreatedAt   time.Time // Record creation time / Heure de création de l'enregistrement
	UpdatedAt   time.Time // Record last update time / Heure de dernière mise à jour
}

// ResourceFilters holds optional list predicates combined with AND semantics
// ResourceFilters contient les prédicats optionnels de liste combinés en AND
type ResourceFilters struct {
	Name     string // Substring match, case-insensitive / Correspondance partielle, insensible à la casse
	Category string // Exact match / Correspondance exacte
	IsActive *bool  // Exact match when set / Correspondance exacte si défini
}

// ResourcePatch holds the fields of a partial update; nil means "leave unchanged"
// ResourcePatch contient les champs d'une mise à jour partielle ; nil signifie "inchangé"
type ResourcePatch struct {
	Name        *string
	Description *string
	Category    *string
	IsActive    *bool
}

// IsEmpty reports whether the patch touches no field / Indique si le patch ne touche aucun champ
func (p ResourcePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil && p.IsActive == nil
}

// Apply copies the supplied fields onto a resource / Copie les champs fournis sur une ressource
func (p ResourcePatch) Apply(r *Resource) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
}

// ClientRole represents an API client's role for authorization / Représente le rôle d'un client API pour l'autorisation
type ClientRole string

const (
	RoleReader ClientRole = "reader" // Read-only access / Accès en lecture seule
	RoleEditor ClientRole = "editor" // Can create, update and delete resources / Peut créer, modifier et supprimer
	RoleAdmin  ClientRole = "admin"  // Full access including operational endpoints / Accès complet, endpoints opérationnels inclus
)

// IsValid checks if role is valid / Vérifie si le rôle est valide
func (r ClientRole) IsValid() bool {
	return r == RoleReader || r == RoleEditor || r == RoleAdmin
}

// HasMinimumRole checks role hierarchy (admin > editor > reader) / Vérifie la hiérarchie des rôles
func (r ClientRole) HasMinimumRole(required ClientRole) bool {
	roleHierarchy := map[ClientRole]int{
		RoleReader: 1,
		RoleEditor: 2,
		RoleAdmin:  3,
	}

	return roleHierarchy[r] >= roleHierarchy[required]
}
