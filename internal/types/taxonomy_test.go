//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTaxonomies_CoreFirst(t *testing.T) {
	all := AllTaxonomies()
	require.Len(t, all, len(CoreTaxonomies)+len(ExploratoryTaxonomies))
	assert.Equal(t, CoreTaxonomies, all[:len(CoreTaxonomies)])
	assert.Equal(t, ExploratoryTaxonomies, all[len(CoreTaxonomies):])

	// Appending to the result must not touch the package slices
	_ = append(all[:1], TaxonomyMBTI)
	assert.Equal(t, TaxonomyHexaco60, CoreTaxonomies[1])
}

func TestTaxonomy_IsCore(t *testing.T) {
	assert.True(t, TaxonomyHexaco100.IsCore())
	assert.True(t, TaxonomyHexaco60.IsCore())
	assert.True(t, TaxonomyBigFiveAspects.IsCore())
	assert.False(t, TaxonomyMBTI.IsCore())
	assert.False(t, Taxonomy("enneagram").IsCore())
}

func TestParseTaxonomy(t *testing.T) {
	for _, taxonomy := range AllTaxonomies() {
		got, err := ParseTaxonomy(taxonomy.String())
		require.NoError(t, err)
		assert.Equal(t, taxonomy, got)
	}

	_, err := ParseTaxonomy("HEXACO_100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown taxonomy "HEXACO_100"`)

	_, err = ParseTaxonomy("")
	assert.Error(t, err)
}
