// Package gen renders tables as Lua source returning one literal table.
//
// Two layouts are produced:
//   - row mode: one entry per row, keyed by the table's primary field
//   - index mode: rows nested along the key fields of an export rule
//
// Every entry ends with a trailing comma. An optional comment header lists
// field names, declared types and descriptions.
package gen
