// Package assets provides the CSL citation styles bundled with docite.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (ieee, apa)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Pandoc reads styles from disk, so a loaded style is handed to it through
// Materialize, which writes the style into a cache directory and returns
// the file path.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.csl           # CSL style (e.g., chicago.csl)
//	└── {name}.csl               # flat layout, checked second
//
// A directory of styles downloaded from the CSL repository can be used as
// is. Files that do not look like CSL (no <style element near the top) are
// rejected with ErrInvalidStyle rather than handed to pandoc.
//
// Loaders that can enumerate their styles implement StyleLister; the CLI
// uses it to suggest names when a style is not found.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
