package assets

// AssetLoader loads CSL styles by name (without the .csl extension).
// Unknown names yield ErrStyleNotFound; malformed ones ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
}

// StyleLister is implemented by loaders that can enumerate their styles.
type StyleLister interface {
	StyleNames() ([]string, error)
}
