// Package agents implements the specialist pool that answers
// medical-tourism questions: a keyword intent classifier, four
// LLM-backed agents, and the orchestrator that fans queries out and
// merges the replies.
package agents

import "strings"

// Intent is a coarse query category used to pick agents.
type Intent string

const (
	IntentMedical    Intent = "medical"
	IntentCultural   Intent = "cultural"
	IntentReview     Intent = "review"
	IntentLocation   Intent = "location"
	IntentFemaleCare Intent = "female_care"
)

// Complexity buckets drive how many agents a query activates.
const (
	ComplexitySimple  = "simple"
	ComplexityMulti   = "multi"
	ComplexityComplex = "complex"
)

// intentKeywords covers the three supported locales. Matching is
// case-insensitive substring search; Arabic and Hangul need no folding.
var intentKeywords = map[Intent][]string{
	IntentMedical: {
		"surgery", "procedure", "doctor", "clinic", "cost", "price",
		"nose", "eye", "recovery", "consultation", "treatment", "botox", "filler",
		"عملية", "جراحة", "طبيب", "عيادة", "تكلفة", "تجميل",
		"수술", "의사", "병원", "시술", "비용",
	},
	IntentCultural: {
		"halal", "prayer", "mosque", "muslim", "islamic", "ramadan", "hijab", "modest",
		"حلال", "صلاة", "مسجد", "رمضان", "حجاب",
		"할랄", "기도", "모스크", "라마단",
	},
	IntentReview: {
		"review", "experience", "youtube", "video", "testimonial", "before after", "results",
		"تجربة", "مراجعة", "تقييم", "فيديو",
		"후기", "리뷰", "경험", "영상",
	},
	IntentLocation: {
		"near", "where", "location", "area", "district", "gangnam", "seoul", "itaewon", "map",
		"أين", "قريب", "موقع", "سيول",
		"강남", "서울", "어디", "위치", "이태원",
	},
	IntentFemaleCare: {
		"female doctor", "woman doctor", "lady doctor", "sister",
		"طبيبة", "دكتورة",
		"여의사", "여자 의사",
	},
}

// Analysis is the result of classifying a query.
type Analysis struct {
	Intents    []Intent
	Roles      []Role
	Complexity string
}

// Classify detects intents by keyword and maps them onto the agents
// that should handle the query. A query with no recognizable intent
// goes to the coordinator alone.
func Classify(text string) Analysis {
	lowered := strings.ToLower(text)

	var intents []Intent
	for _, intent := range []Intent{IntentMedical, IntentCultural, IntentReview, IntentLocation, IntentFemaleCare} {
		for _, kw := range intentKeywords[intent] {
			if strings.Contains(lowered, kw) {
				intents = append(intents, intent)
				break
			}
		}
	}

	analysis := Analysis{Intents: intents}
	has := func(i Intent) bool {
		for _, v := range intents {
			if v == i {
				return true
			}
		}
		return false
	}

	if has(IntentMedical) || has(IntentFemaleCare) {
		analysis.Roles = append(analysis.Roles, RoleMedical)
	}
	if has(IntentCultural) || has(IntentLocation) {
		analysis.Roles = append(analysis.Roles, RoleCultural)
	}
	if has(IntentReview) {
		analysis.Roles = append(analysis.Roles, RoleReview)
	}
	if len(analysis.Roles) == 0 {
		analysis.Roles = []Role{RoleCoordinator}
	}

	switch {
	case len(intents) > 2:
		analysis.Complexity = ComplexityComplex
	case len(intents) > 1:
		analysis.Complexity = ComplexityMulti
	default:
		analysis.Complexity = ComplexitySimple
	}
	return analysis
}
