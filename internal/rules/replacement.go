package rules

import (
	"path"
	"strings"
)

// IndexFile is the entry file name appended to directory specifiers.
const IndexFile = "index.js"

// AppendExtension appends ".js" to specifier verbatim.
func AppendExtension(specifier string) string {
	return specifier + ".js"
}

// AppendIndex slash-joins IndexFile onto specifier. The join cleans the path,
// so "./dir" would collapse to "dir/index.js"; the "./" prefix is restored
// when specifier is "." or starts with "./". A query suffix is joined as if
// it were part of the last path segment.
func AppendIndex(specifier string) string {
	prefix := ""
	if specifier == "." || strings.HasPrefix(specifier, "./") {
		prefix = "./"
	}
	return prefix + path.Join(specifier, IndexFile)
}
