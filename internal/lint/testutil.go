package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewExampleTree creates the standard fixture project in a temp directory and
// returns the path of its "example" directory.
//
// Layout:
//
//	example/
//	  index.js            entry file
//	  other.js
//	  joker.jsx
//	  dir/index.js        plain directory
//	  arkham.js           file with a same-named sibling directory
//	  arkham/index.js
//	  batcave.ts          TypeScript file with a same-named sibling directory
//	  batcave/index.js
//	index.js              parent directory entry
func NewExampleTree(t testing.TB) string {
	t.Helper()

	root := t.TempDir()
	example := filepath.Join(root, "example")

	files := map[string]string{
		"index.js":                 "export default {}\n",
		"example/index.js":         "",
		"example/other.js":         "",
		"example/joker.jsx":        "export const Joker = () => <div />\n",
		"example/dir/index.js":     "export const batmobile = true\n",
		"example/arkham.js":        "export default 'arkham'\n",
		"example/arkham/index.js":  "",
		"example/batcave.ts":       "export default 'batcave'\n",
		"example/batcave/index.js": "",
	}
	for rel, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}

	return example
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
