package narration_test

import (
	"testing"

	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTransferTemplate(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		want      []string
	}{
		{
			name:      "NEFT with IFSC and trailing UTR",
			narration: "NEFT CR-SBIN0002776-MERCURE MEDI SURGE-SBINN52025110406690875",
			want:      []string{"mercure medi surge"},
		},
		{
			name:      "NEFT with numeric reference",
			narration: "NEFT 000123456789 SOME TRADER LLP REF55",
			want:      []string{"some trader llp"},
		},
		{
			name:      "UPI with direction marker",
			narration: "UPI/CR/513398765432/RAVI KIRANA STORES/okhdfcbank",
			want:      []string{"ravi kirana stores"},
		},
		{
			name:      "UPI hyphenated",
			narration: "UPI-513398765432-RAVI KIRANA STORES-okaxis",
			want:      []string{"ravi kirana stores"},
		},
		{
			name:      "cheque with payee",
			narration: "CHQ NO 004412 GUPTA HARDWARE",
			want:      []string{"gupta hardware"},
		},
		{
			name:      "plain funds transfer",
			narration: "FT-IB4412345678-ACME DISTRIBUTORS",
			want:      []string{"acme distributors"},
		},
		{
			name:      "no template matches",
			narration: "INTEREST CREDIT Q3",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, narration.ExtractTransferTemplate(tt.narration))
		})
	}
}

func TestExtractColonSegment(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		want      []string
	}{
		{
			name:      "name between colons",
			narration: "IMPS:RAVI TRADERS:934512",
			want:      []string{"ravi traders"},
		},
		{
			name:      "bank marker rejected",
			narration: "BY TRANSFER:HDFC:00441233",
			want:      nil,
		},
		{
			name:      "IFSC-like code rejected",
			narration: "BY TRANSFER-NEFT:HDFC0001234:RENUKA TRADERS",
			want:      nil,
		},
		{
			name:      "city marker rejected",
			narration: "POS PURCHASE:HYDERABAD:TERMINAL 12",
			want:      nil,
		},
		{
			name:      "single colon yields nothing",
			narration: "NEFT: SOMETHING",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, narration.ExtractColonSegment(tt.narration))
		})
	}
}

func TestExtractTokenWindows(t *testing.T) {
	got := narration.ExtractTokenWindows("NEFT CR-SBIN0002776-MERCURE MEDI SURGE-SBINN52025110406690875")
	require.NotEmpty(t, got)
	// Reference codes and short markers are dropped; the widest window
	// over the surviving tokens comes first.
	assert.Equal(t, "neft mercure medi surge", got[0])
	assert.Contains(t, got, "mercure medi surge")
	assert.NotContains(t, got, "cr sbin0002776")
}

func TestExtractCleanedDescription(t *testing.T) {
	got := narration.ExtractCleanedDescription("PAID TO SHARMA STEELS REF NO 8839123 UTR N2201")
	assert.Equal(t, []string{"paid to sharma steels"}, got)

	assert.Nil(t, narration.ExtractCleanedDescription("UTR 99123456789"))
}

func TestFirstCandidateStopsAtFirstProductiveStep(t *testing.T) {
	// Template beats token windows when both would produce something.
	got := narration.FirstCandidate("NEFT CR-SBIN0002776-MERCURE MEDI SURGE-SBINN52025110406690875")
	assert.Equal(t, "mercure medi surge", got)

	assert.Equal(t, "", narration.FirstCandidate("991"))
}

func TestPlausible(t *testing.T) {
	assert.True(t, narration.Plausible("raja"))
	assert.False(t, narration.Plausible("ra"))
	assert.False(t, narration.Plausible("123456"))
	assert.False(t, narration.Plausible(""))
}
