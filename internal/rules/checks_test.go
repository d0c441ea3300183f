package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausecheck/internal/segment"
)

func clauseInput(clauseType, text string) Input {
	return Input{Clause: segment.Clause{Type: clauseType, Text: text}}
}

func findingCodes(findings []Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestIndexFoldByteOffsetsSurviveMultibyteCasePairs(t *testing.T) {
	// "İ" (U+0130) lowercases to two runes under full Unicode folding, which
	// would shift every offset after it. The ASCII fold keeps offsets exact.
	haystack := "İstanbul office NOTICE address"
	idx := indexFold(haystack, "notice")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "NOTICE", haystack[idx:idx+len("notice")])

	assert.Equal(t, 0, indexFold("TERMINATION clause", "termination"))
	assert.Equal(t, -1, indexFold("no match here", "notice"))
}

func TestRelFindingSpanAddressesOriginalText(t *testing.T) {
	text := "İf applicable, payment is due upon INVOICE receipt."
	f := relFinding("PAYMENT_NO_TERM", "no payment term", SeverityMinor, text, "invoice")
	assert.Equal(t, "INVOICE", text[f.Span.Start:f.Span.Start+f.Span.Length])
}

func TestCheckTerminationForConvenienceWithoutNotice(t *testing.T) {
	in := clauseInput("termination", "Either party may terminate for convenience.")
	findings := checkTermination(in)

	codes := findingCodes(findings)
	require.Contains(t, codes, "TERMINATION_NO_NOTICE")

	for _, f := range findings {
		if f.Code != "TERMINATION_NO_NOTICE" {
			continue
		}
		assert.Equal(t, SeverityMajor, f.Severity)
		assert.Equal(t, SpanRelative, f.SpanKind)
		// Located at "for convenience" within the clause text.
		assert.Equal(t, uint32(27), f.Span.Start)
		assert.Equal(t, uint32(len("for convenience")), f.Span.Length)
	}
}

func TestCheckTerminationQuiet(t *testing.T) {
	in := clauseInput("termination", "Either party may terminate for convenience on ninety days notice, or for cause with a thirty day cure period.")
	assert.Empty(t, checkTermination(in))
}

func TestCheckTerminationNoCure(t *testing.T) {
	in := clauseInput("termination", "Customer may terminate for material breach.")
	codes := findingCodes(checkTermination(in))
	assert.Contains(t, codes, "TERMINATION_NO_CURE")
	assert.NotContains(t, codes, "TERMINATION_NO_NOTICE")
}

func TestCheckGoverningLaw(t *testing.T) {
	in := clauseInput("governing_law", "This agreement is governed by the laws of Scotland, excluding its conflict of laws rules.")
	assert.Empty(t, findingCodes(checkGoverningLaw(in)))

	vague := clauseInput("governing_law", "Disputes shall be handled appropriately.")
	codes := findingCodes(checkGoverningLaw(vague))
	assert.Contains(t, codes, "GOVERNING_LAW_UNCLEAR")
	assert.Contains(t, codes, "GOVERNING_LAW_NO_CONFLICTS_WAIVER")
}

func TestCheckGoverningLawJurisdictionMismatch(t *testing.T) {
	in := clauseInput("governing_law", "This agreement is governed by the laws of France, excluding conflict of laws.")
	in.Jurisdiction = "gb"
	codes := findingCodes(checkGoverningLaw(in))
	assert.Contains(t, codes, "GOVERNING_LAW_FOREIGN")

	in.Jurisdiction = "fr"
	codes = findingCodes(checkGoverningLaw(in))
	assert.NotContains(t, codes, "GOVERNING_LAW_FOREIGN")
}

func TestCheckJurisdiction(t *testing.T) {
	in := clauseInput("jurisdiction", "The courts of England shall have exclusive jurisdiction.")
	assert.Empty(t, findingCodes(checkJurisdiction(in)))

	weak := clauseInput("jurisdiction", "The parties submit to the courts of England.")
	assert.Contains(t, findingCodes(checkJurisdiction(weak)), "JURISDICTION_NOT_EXCLUSIVE")

	arb := clauseInput("jurisdiction", "Disputes are finally settled by arbitration seated in Paris under exclusive jurisdiction.")
	assert.Contains(t, findingCodes(checkJurisdiction(arb)), "ARBITRATION_NO_RULES")
}

func TestCheckLiabilityUncapped(t *testing.T) {
	in := clauseInput("liability", "Each party is liable for all damages arising from this agreement.")
	findings := checkLiability(in)
	codes := findingCodes(findings)
	assert.Contains(t, codes, "LIABILITY_UNCAPPED")
	for _, f := range findings {
		if f.Code == "LIABILITY_UNCAPPED" {
			assert.Equal(t, SeverityMajor, f.Severity)
		}
	}
}

func TestCheckPaymentPolicyCap(t *testing.T) {
	in := clauseInput("payment", "Invoices are payable within 60 days of receipt, with interest on late payment.")
	in.Policy = map[string]string{"max_payment_days": "30"}
	assert.Contains(t, findingCodes(checkPayment(in)), "PAYMENT_TERM_EXCEEDS_POLICY")

	in.Policy = map[string]string{"max_payment_days": "90"}
	assert.NotContains(t, findingCodes(checkPayment(in)), "PAYMENT_TERM_EXCEEDS_POLICY")
}

func TestCheckDataProtectionRegime(t *testing.T) {
	in := clauseInput("data_protection", "The processor handles personal data on behalf of the controller in accordance with the GDPR.")
	assert.NotContains(t, findingCodes(checkDataProtection(in)), "DATA_PROTECTION_NO_REGIME")

	bare := clauseInput("data_protection", "Each party will handle personal data carefully.")
	findings := checkDataProtection(bare)
	require.Contains(t, findingCodes(findings), "DATA_PROTECTION_NO_REGIME")
	for _, f := range findings {
		if f.Code == "DATA_PROTECTION_NO_REGIME" {
			require.NotEmpty(t, f.Citations)
		}
	}
}

func TestRelFindingUnlocatableNeedle(t *testing.T) {
	f := relFinding("X", "msg", SeverityInfo, "clause text", "absent needle")
	assert.True(t, f.Span.IsZero())
	assert.Equal(t, SpanRelative, f.SpanKind)
}

func TestCheckersAreDeterministic(t *testing.T) {
	in := clauseInput("termination", "Either party may terminate for convenience.")
	first := checkTermination(in)
	second := checkTermination(in)
	assert.Equal(t, first, second)
}
