// Package pagination provides the --sort, --limit, --offset, --page and
// --page-size handling shared by list commands, plus the item sorter.
package pagination
