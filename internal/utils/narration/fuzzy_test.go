package narration_test

import (
	"testing"

	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
	"github.com/stretchr/testify/assert"
)

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		pattern   string
		want      bool
	}{
		{
			name:      "exact after normalization",
			candidate: "  Sri Raja   Enterprises ",
			pattern:   "sri raja enterprises",
			want:      true,
		},
		{
			name:      "single short generic word rejected",
			candidate: "raja",
			pattern:   "sri raja enterprises",
			want:      false,
		},
		{
			name:      "full phrase contained with extra city token",
			candidate: "sri raja enterprises hyderabad",
			pattern:   "sri raja enterprises",
			want:      true,
		},
		{
			name:      "two shared significant words",
			candidate: "payment to mercure medi surge mumbai",
			pattern:   "mercure medi surge",
			want:      true,
		},
		{
			name:      "no shared words and no containment",
			candidate: "gupta hardware",
			pattern:   "sri raja enterprises",
			want:      false,
		},
		{
			name:      "comparable length containment",
			candidate: "acme distributors pvt",
			pattern:   "acme distributors",
			want:      true,
		},
		{
			name:      "empty sides never match",
			candidate: "",
			pattern:   "sri raja enterprises",
			want:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, narration.MatchesPattern(tt.candidate, tt.pattern))
		})
	}
}
