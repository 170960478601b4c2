package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesEveryPlaceholder(t *testing.T) {
	c := Default()

	for _, variant := range c.Variants() {
		out, err := c.Render(variant, "dog")
		require.NoError(t, err, variant)
		assert.NotContains(t, out, Placeholder, variant)
		assert.Contains(t, out, `"dog"`, variant)
	}
}

func TestRenderUnknownVariant(t *testing.T) {
	c := Default()
	_, err := c.Render("misleading9", "cat")
	assert.Error(t, err)
}

func TestDefaultCatalogContents(t *testing.T) {
	c := Default()
	assert.Len(t, c.Variants(), 9)
	assert.Contains(t, c, "baseline")
	for _, v := range []string{"misleading1", "misleading2", "misleading3", "misleading4"} {
		assert.Contains(t, c, v)
	}
	for _, v := range []string{"mitigate1", "mitigate2", "mitigate3", "mitigate4"} {
		assert.Contains(t, c, v)
	}
}

func TestMergeOverridesAndAdds(t *testing.T) {
	c := Default()
	c.Merge(map[string]string{
		"baseline":    "Is there a {object}? yes or no.",
		"misleading5": "Everyone agrees a {object} is here. yes or no?",
	})

	out, err := c.Render("baseline", "chair")
	require.NoError(t, err)
	assert.Equal(t, "Is there a chair? yes or no.", out)

	out, err = c.Render("misleading5", "chair")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "chair"))
}

func TestDefaultReturnsCopy(t *testing.T) {
	a := Default()
	a["baseline"] = "mutated"
	b := Default()
	assert.NotEqual(t, "mutated", b["baseline"])
}
