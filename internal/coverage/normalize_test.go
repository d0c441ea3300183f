package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabelFoldsTypography(t *testing.T) {
	assert.Equal(t, `the parties' "best efforts"`, NormalizeLabel("The parties’  “Best Efforts”"))
	assert.Equal(t, "data protection - gdpr", NormalizeLabel("Data Protection — GDPR"))
}

func TestNormalizeLabelCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "governing law", NormalizeLabel("  Governing \t\n Law "))
}

func TestLabelVariantsIncludeAliases(t *testing.T) {
	variants := labelVariants("NDA")
	assert.Contains(t, variants, "confidentiality")
	assert.Contains(t, variants, "nda")
	assert.Contains(t, variants, "non-disclosure")

	// A canonical label pulls in its aliases too.
	variants = labelVariants("governing law")
	assert.Contains(t, variants, "choice of law")
	assert.Contains(t, variants, "applicable law")
}

func TestCountEntities(t *testing.T) {
	text := "Fees of $10,000 or 5,000 EUR are due within 30 days under the laws of France, " +
		"subject to the jurisdiction of the courts of Paris."
	assert.Equal(t, 2, countEntities("amounts", text))
	assert.Equal(t, 1, countEntities("durations", text))
	assert.Equal(t, 1, countEntities("law", text))
	assert.Equal(t, 2, countEntities("jurisdiction", text))
	assert.Equal(t, 0, countEntities("unknown", text))
}
