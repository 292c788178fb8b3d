// Package scan lists image files and study directories for the manifest
// generators.
//
// All reads go through a billy.Filesystem: the commands pass an osfs
// rooted at the directory the user named, tests pass a memfs. Scans are
// single-level; nothing here recurses.
package scan
