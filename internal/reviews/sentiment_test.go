package reviews

import "testing"

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		sign int
	}{
		{"english positive", "Amazing results, I totally recommend this clinic, very professional staff", 1},
		{"english negative", "I regret it, terrible pain and the swelling was awful", -1},
		{"arabic positive", "تجربة ممتازة والطاقم محترف وأنصح بها", 1},
		{"arabic negative", "ندمت على العملية والنتيجة سيء جداً", -1},
		{"korean positive", "정말 만족스러워요 추천합니다 자연스러운 결과", 1},
		{"korean negative", "후회해요 부작용 때문에 최악이었어요", -1},
		{"no signal", "I went to Seoul last week.", 0},
		{"mixed leans", "great results but some pain and swelling", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := SentimentScore(tt.text)
			switch {
			case tt.sign > 0 && score <= 0:
				t.Errorf("expected positive score, got %f", score)
			case tt.sign < 0 && score >= 0:
				t.Errorf("expected negative score, got %f", score)
			case tt.sign == 0 && score != 0:
				t.Errorf("expected zero score, got %f", score)
			}
			if score < -1 || score > 1 {
				t.Errorf("score out of range: %f", score)
			}
		})
	}
}

func TestSentimentLabel(t *testing.T) {
	if SentimentLabel(0.8) != "positive" {
		t.Error("expected positive label")
	}
	if SentimentLabel(-0.5) != "negative" {
		t.Error("expected negative label")
	}
	if SentimentLabel(0.1) != "neutral" {
		t.Error("expected neutral label")
	}
}
