package agents

import "testing"

func rolesEqual(a, b []Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		roles      []Role
		complexity string
	}{
		{
			name:       "english medical",
			text:       "How much does rhinoplasty surgery cost?",
			roles:      []Role{RoleMedical},
			complexity: ComplexitySimple,
		},
		{
			name:       "arabic medical",
			text:       "كم تكلفة عملية الأنف؟",
			roles:      []Role{RoleMedical},
			complexity: ComplexitySimple,
		},
		{
			name:       "korean medical",
			text:       "쌍꺼풀 수술 비용이 얼마인가요?",
			roles:      []Role{RoleMedical},
			complexity: ComplexitySimple,
		},
		{
			name:       "cultural with location",
			text:       "Are there halal restaurants nearby?",
			roles:      []Role{RoleCultural},
			complexity: ComplexityMulti,
		},
		{
			name:       "arabic cultural only",
			text:       "هل يوجد مسجد في المنطقة؟",
			roles:      []Role{RoleCultural},
			complexity: ComplexitySimple,
		},
		{
			name:       "review",
			text:       "Show me YouTube reviews from other patients",
			roles:      []Role{RoleReview},
			complexity: ComplexitySimple,
		},
		{
			name:       "female doctor routes to medical",
			text:       "أريد طبيبة لعملية التجميل",
			roles:      []Role{RoleMedical},
			complexity: ComplexityMulti,
		},
		{
			name:       "location routes to cultural",
			text:       "Is the clinic near Gangnam station?",
			roles:      []Role{RoleMedical, RoleCultural},
			complexity: ComplexityMulti,
		},
		{
			name:       "complex multi intent",
			text:       "What does eyelid surgery cost in Gangnam, are there halal restaurants, and can I see reviews?",
			roles:      []Role{RoleMedical, RoleCultural, RoleReview},
			complexity: ComplexityComplex,
		},
		{
			name:       "greeting falls back to coordinator",
			text:       "Hello, I am planning a trip",
			roles:      []Role{RoleCoordinator},
			complexity: ComplexitySimple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if !rolesEqual(got.Roles, tt.roles) {
				t.Errorf("roles = %v, want %v", got.Roles, tt.roles)
			}
			if got.Complexity != tt.complexity {
				t.Errorf("complexity = %q, want %q", got.Complexity, tt.complexity)
			}
		})
	}
}

func TestClassifyNearMatchesLocation(t *testing.T) {
	got := Classify("any good spots near the hotel?")
	if !rolesEqual(got.Roles, []Role{RoleCultural}) {
		t.Errorf("roles = %v, want cultural", got.Roles)
	}
}
