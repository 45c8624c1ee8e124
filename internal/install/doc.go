// Package install downloads a pinned pandoc release and installs the pandoc
// binary into a local directory.
//
// Release archives are fetched from GitHub (or any mirror with the same
// layout via Installer.BaseURL). Supported archive formats are .tar.gz,
// .tar.xz and .zip; only the entry named pandoc (or pandoc.exe) is
// extracted, everything else in the archive is skipped.
package install
