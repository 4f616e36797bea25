package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveColumnsDropsDepartmentWhenFixed(t *testing.T) {
	for _, v := range Variants() {
		for _, key := range v.Sections {
			all := ResolveColumns(key, false)
			fixed := ResolveColumns(key, true)

			require.Contains(t, Headers(all), "Department", key)
			require.NotContains(t, Headers(fixed), "Department", key)
			require.Len(t, fixed, len(all)-1, key)
		}
	}
}

func TestResolveColumnsKeepsOrder(t *testing.T) {
	columns := ResolveColumns(SectionResearch, true)
	require.Equal(t, []string{"Title", "Authors", "Faculty", "Type", "Journal / Conference", "Indexing", "Published On", "Link"}, Headers(columns))
}

func TestResolveColumnsUnknownSection(t *testing.T) {
	require.Nil(t, ResolveColumns(SectionKey("unknown"), false))
}

func TestLookupVariant(t *testing.T) {
	require.Len(t, Variants(), 11)

	v, err := LookupVariant(" Comprehensive ")
	require.NoError(t, err)
	require.True(t, v.Composite())
	require.Len(t, v.Sections, 7)

	v, err = LookupVariant("research")
	require.NoError(t, err)
	require.False(t, v.Composite())

	_, err = LookupVariant("sports")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestEverySectionHasSpec(t *testing.T) {
	for _, v := range Variants() {
		for _, key := range v.Sections {
			spec, ok := Spec(key)
			require.True(t, ok, key)
			require.NotEmpty(t, spec.Title)
			require.LessOrEqual(t, len(spec.Title), 31, "sheet names are limited to 31 characters")
		}
	}
}
