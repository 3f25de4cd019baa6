package reviews

import "strings"

// Sentiment keyword lists cover the three supported locales. Scoring
// is a simple normalized difference of positive and negative hits;
// good enough to rank videos, not a substitute for reading them.
var positiveWords = []string{
	"amazing", "great", "excellent", "happy", "satisfied", "recommend",
	"natural", "professional", "kind", "worth it", "love", "perfect",
	"painless", "smooth",
	"ممتاز", "رائع", "سعيدة", "أنصح", "طبيعي", "محترف", "مريح",
	"만족", "추천", "자연스러", "친절", "최고", "좋아요", "대만족",
}

var negativeWords = []string{
	"regret", "terrible", "awful", "pain", "scam", "botched", "infection",
	"disappointed", "overpriced", "rude", "swelling", "uneven", "avoid",
	"ندمت", "سيء", "مؤلم", "غش", "خائبة", "التهاب", "مخيب",
	"후회", "부작용", "최악", "아파요", "불만", "비추", "염증",
}

// SentimentScore returns a score in [-1, 1] from keyword counts.
// Zero means neutral or no signal.
func SentimentScore(text string) float64 {
	lowered := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		pos += strings.Count(lowered, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lowered, w)
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

// SentimentLabel buckets a score into positive, neutral, or negative.
func SentimentLabel(score float64) string {
	switch {
	case score > 0.2:
		return "positive"
	case score < -0.2:
		return "negative"
	default:
		return "neutral"
	}
}
