package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLookup(t *testing.T) {
	testCases := []struct {
		alias    string
		expected string
		found    bool
	}{
		{alias: "monaco", expected: "monaco-grand-prix", found: true},
		{alias: "Monaco", expected: "monaco-grand-prix", found: true},
		{alias: "  sao   paulo ", expected: "sao-paulo-grand-prix", found: true},
		{alias: "brazilian", expected: "sao-paulo-grand-prix", found: true},
		{alias: "cota", expected: "united-states-grand-prix", found: true},
		{alias: "silverstone", expected: "british-grand-prix", found: true},
		{alias: "atlantis", found: false},
		{alias: "", found: false},
	}

	c := Default()
	for _, test := range testCases {
		slug, ok := c.Lookup(test.alias)
		require.Equal(t, test.found, ok, test.alias)
		require.Equal(t, test.expected, slug, test.alias)
	}
}

func TestDefaultIsWellFormed(t *testing.T) {
	c := Default()
	require.GreaterOrEqual(t, c.Len(), 50)

	for _, a := range c.Aliases() {
		require.Equal(t, Key(a.Name), a.Name, "aliases are stored normalized")
		slug, ok := c.Lookup(a.Name)
		require.True(t, ok)
		require.Equal(t, a.Slug, slug)
	}
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Alias{
		{Name: "monaco", Slug: "monaco-grand-prix"},
		{Name: "MONACO ", Slug: "other-grand-prix"},
	})
	require.True(t, errors.Is(err, ErrDuplicateAlias))

	_, err = New([]Alias{{Name: "  ", Slug: "x"}})
	require.Error(t, err)
}

func TestAliasesAreCopies(t *testing.T) {
	c := Default()
	aliases := c.Aliases()
	aliases[0].Slug = "tampered"

	slug, ok := c.Lookup(aliases[0].Name)
	require.True(t, ok)
	require.NotEqual(t, "tampered", slug)
}

func TestSlugsAndAliasesOf(t *testing.T) {
	c, err := New([]Alias{
		{Name: "spa", Slug: "belgian-grand-prix"},
		{Name: "monaco", Slug: "monaco-grand-prix"},
		{Name: "belgium", Slug: "belgian-grand-prix"},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"belgian-grand-prix", "monaco-grand-prix"}, c.Slugs())
	require.Equal(t, []string{"spa", "belgium"}, c.AliasesOf("belgian-grand-prix"))
	require.Nil(t, c.AliasesOf("unknown"))
}
