package similarity

import "testing"

func TestScore_Identical(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b string
	}{
		{"exact", "5 Tips to Grow Your Business Fast", "5 Tips to Grow Your Business Fast"},
		{"case folded", "Grow Your Business", "GROW your BUSINESS"},
		{"surrounding whitespace", "  Grow Your Business ", "Grow Your Business"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Score(tc.a, tc.b); got != 1.0 {
				t.Errorf("Score(%q, %q) = %v, want 1.0", tc.a, tc.b, got)
			}
		})
	}
}

func TestScore_Empty(t *testing.T) {
	t.Parallel()

	if got := Score("", "anything"); got != 0.0 {
		t.Errorf("Score with empty side = %v, want 0.0", got)
	}
	if got := Score("anything", "   "); got != 0.0 {
		t.Errorf("Score with blank side = %v, want 0.0", got)
	}
	if got := Score("", ""); got != 1.0 {
		t.Errorf("Score of two empties = %v, want 1.0", got)
	}
}

func TestScore_Symmetric(t *testing.T) {
	t.Parallel()

	a := "5 Tips to Grow Your Business Fast"
	b := "Three Surprising Ways to Scale Your Startup"

	if Score(a, b) != Score(b, a) {
		t.Errorf("Score is not symmetric: %v vs %v", Score(a, b), Score(b, a))
	}
}

func TestScore_NearDuplicateScoresHigh(t *testing.T) {
	t.Parallel()

	got := Score("5 Tips to Grow Your Business Fast", "5 Tips to Grow Your Business Quickly")
	if got < 0.75 {
		t.Errorf("near-duplicate score = %v, want >= 0.75", got)
	}
	if got >= 1.0 {
		t.Errorf("near-duplicate score = %v, want < 1.0", got)
	}
}

func TestScore_DistinctTitleScoresLow(t *testing.T) {
	t.Parallel()

	got := Score("5 Tips to Grow Your Business Fast", "Three Surprising Ways to Scale Your Startup")
	if got >= 0.75 {
		t.Errorf("distinct title score = %v, want < 0.75", got)
	}
}

func TestScore_ReorderedWordsStillClose(t *testing.T) {
	t.Parallel()

	reordered := Score("Grow Your Business Fast", "Fast Business Growth Tips")
	unrelated := Score("Grow Your Business Fast", "Quantum Mechanics Explained")

	if reordered <= unrelated {
		t.Errorf("reordered score %v should exceed unrelated score %v", reordered, unrelated)
	}
}

func TestMostSimilar(t *testing.T) {
	t.Parallel()

	existing := []string{
		"Three Surprising Ways to Scale Your Startup",
		"5 Tips to Grow Your Business Quickly",
		"Why Remote Teams Win",
	}

	match := MostSimilar("5 Tips to Grow Your Business Fast", existing, 0.75)
	if !match.Similar {
		t.Fatalf("expected a similar match, got %+v", match)
	}
	if match.Text != "5 Tips to Grow Your Business Quickly" {
		t.Errorf("matched %q, want the near-duplicate entry", match.Text)
	}
	if match.Score < 0.75 {
		t.Errorf("match score = %v, want >= threshold", match.Score)
	}
}

func TestMostSimilar_BelowThreshold(t *testing.T) {
	t.Parallel()

	existing := []string{"Why Remote Teams Win", "The Future of Solar Energy"}

	match := MostSimilar("5 Tips to Grow Your Business Fast", existing, 0.75)
	if match.Similar {
		t.Fatalf("expected no similar match, got %+v", match)
	}
	if match.Text == "" {
		t.Error("expected best-effort match text even below threshold")
	}
}

func TestMostSimilar_EmptySet(t *testing.T) {
	t.Parallel()

	match := MostSimilar("Anything", nil, 0.75)
	if match.Similar || match.Score != 0 || match.Text != "" {
		t.Errorf("empty set should produce zero match, got %+v", match)
	}
}

func TestMostSimilar_ExactDuplicate(t *testing.T) {
	t.Parallel()

	match := MostSimilar("Grow Your Business", []string{"grow your business"}, 0.75)
	if !match.Similar || match.Score != 1.0 {
		t.Errorf("exact duplicate should score 1.0 similar, got %+v", match)
	}
}
