package domain

import "testing"

func TestResourcePatch_IsEmpty(t *testing.T) {
	if !(ResourcePatch{}).IsEmpty() {
		t.Error("Expected zero patch to be empty")
	}

	name := "Widget"
	if (ResourcePatch{Name: &name}).IsEmpty() {
		t.Error("Expected patch with name to be non-empty")
	}

	active := false
	if (ResourcePatch{IsActive: &active}).IsEmpty() {
		t.Error("Expected patch with isActive=false to be non-empty")
	}
}

func TestResourcePatch_Apply(t *testing.T) {
	r := &Resource{
		Name:        "Widget",
		Description: "A thing",
		Category:    "tools",
		IsActive:    true,
	}

	desc := "An updated thing"
	active := false
	patch := ResourcePatch{Description: &desc, IsActive: &active}
	patch.Apply(r)

	if r.Name != "Widget" {
		t.Errorf("Expected name to be unchanged, got '%s'", r.Name)
	}
	if r.Description != "An updated thing" {
		t.Errorf("Expected description 'An updated thing', got '%s'", r.Description)
	}
	if r.Category != "tools" {
		t.Errorf("Expected category to be unchanged, got '%s'", r.Category)
	}
	if r.IsActive {
		t.Error("Expected isActive to be false after patch")
	}
}

func TestClientRole_HasMinimumRole(t *testing.T) {
	tests := []struct {
		name     string
		role     ClientRole
		required ClientRole
		expected bool
	}{
		{"Admin has admin", RoleAdmin, RoleAdmin, true},
		{"Admin has editor", RoleAdmin, RoleEditor, true},
		{"Admin has reader", RoleAdmin, RoleReader, true},
		{"Editor has editor", RoleEditor, RoleEditor, true},
		{"Editor lacks admin", RoleEditor, RoleAdmin, false},
		{"Reader lacks editor", RoleReader, RoleEditor, false},
		{"Reader has reader", RoleReader, RoleReader, true},
		{"Unknown role lacks reader", ClientRole("ghost"), RoleReader, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.HasMinimumRole(tt.required); got != tt.expected {
				t.Errorf("HasMinimumRole(%s, %s) = %v, expected %v", tt.role, tt.required, got, tt.expected)
			}
		})
	}
}

func TestClientRole_IsValid(t *testing.T) {
	for _, role := range []ClientRole{RoleReader, RoleEditor, RoleAdmin} {
		if !role.IsValid() {
			t.Errorf("Expected role '%s' to be valid", role)
		}
	}

	if ClientRole("superuser").IsValid() {
		t.Error("Expected unknown role to be invalid")
	}
}
