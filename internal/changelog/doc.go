// Package changelog turns commit titles into Keep a Changelog sections and
// splices them into a CHANGELOG.md file.
//
// This package implements:
//   - Commit title classification (conventional commits plus breaking markers)
//   - Deterministic section rendering in fixed category order
//   - Insertion of a release section below the Unreleased heading
//   - Rewriting of the [unreleased] comparison link
//   - Colored terminal previews of a release
//
// Everything here is pure except Merge, which reads and writes the file once.
package changelog
