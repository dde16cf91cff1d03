package prodmon

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend strings (unit names, group names, chart labels) reach the page
// unescaped, so the script must only write them as text nodes.
func TestStaticFS_ScriptWritesTextOnly(t *testing.T) {
	src, err := fs.ReadFile(StaticFS, "web/static/app.js")
	require.NoError(t, err)

	for _, sink := range []string{"innerHTML", "outerHTML", "insertAdjacentHTML", "document.write"} {
		assert.NotContains(t, string(src), sink)
	}
	assert.Contains(t, string(src), "createTextNode")
}

func TestStaticFS_IndexReferencesAssets(t *testing.T) {
	page, err := fs.ReadFile(StaticFS, "web/static/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(page), "/static/app.js")
	assert.Contains(t, string(page), "/static/app.css")
}
