package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "reception:create", "reception:create", true},
		{"exact match different action", "reception:create", "reception:read", false},
		{"exact match different resource", "reception:create", "delivery:create", false},

		// Full wildcard tests
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard *:*:*", "*:*:*", "execution:create", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "delivery:*", "delivery:create", true},
		{"resource wildcard matches read", "delivery:*", "delivery:read", true},
		{"resource wildcard doesn't match other resource", "delivery:*", "reception:create", false},

		// Action wildcard tests
		{"action wildcard matches material", "*:read", "material:read", true},
		{"action wildcard matches project", "*:read", "project:read", true},
		{"action wildcard doesn't match other action", "*:read", "material:create", false},

		// Edge cases
		{"empty required permission", "project:create", "", false},
		{"empty user permission", "", "project:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs multi-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role     string
		required string
		expected bool
	}{
		{"admin", "delivery:create", true},
		{"warehouse", "reception:create", true},
		{"warehouse", "execution:create", false},
		{"field", "execution:create", true},
		{"field", "delivery:create", false},
		{"supervisor", "workquantity:update", true},
		{"supervisor", "delivery:create", false},
		{"supply", "order:create", true},
		{"unknown-role", "project:read", false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.required); got != tt.expected {
			t.Errorf("HasPermission(%q, %q) = %v, expected %v",
				tt.role, tt.required, got, tt.expected)
		}
	}
}
