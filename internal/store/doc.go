// Package store provides the storage used by the CLI:
//   - Repository: a generic in-memory collection seeded from injected
//     fixtures, so commands and tests never reach for package globals.
//   - FileStore: one JSON file per event session under <data_dir>/sessions,
//     written atomically (temp file + rename) and stamped with a semver
//     schema version.
//   - Supplier directory: a single JSON file holding supplier records.
package store
