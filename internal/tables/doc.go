// Package tables keeps the registry of named changeset tables.
//
// Each table's record lives under "tblmeta/{name}" as JSON and pins the codec
// its entries were written with. The entries themselves live under the table
// prefix "tbl/{name}/" (see the pebble storage package).
package tables
