package ports

import "iter"

// Walker enumerates the files below a lint root.
type Walker interface {
	// WalkFiles yields every file under root, skipping directories whose name
	// matches one of ignores.
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
