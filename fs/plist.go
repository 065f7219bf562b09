package fs

import (
	"strings"

	"github.com/beevik/etree"
)

// bundleDisplayName extracts CFBundleName from a docset Info.plist.
// Returns "" when the file is missing or carries no usable name, in
// which case callers fall back to the bundle directory name.
func bundleDisplayName(path string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return ""
	}

	dict := doc.FindElement("plist/dict")
	if dict == nil {
		return ""
	}

	// plist dicts alternate <key> and value elements.
	children := dict.ChildElements()
	for i, el := range children {
		if el.Tag != "key" || strings.TrimSpace(el.Text()) != "CFBundleName" {
			continue
		}
		if i+1 >= len(children) {
			break
		}
		if v := children[i+1]; v.Tag == "string" {
			return strings.TrimSpace(v.Text())
		}
	}
	return ""
}
