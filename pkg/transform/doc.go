// Package transform turns extracted port records into output rows.
//
// Row derives a Lag column from the OperState text that SROS prints for LAG
// members ("up - Active in LAG 7"), shortens OperState to its leading token,
// inserts Lag as the third column and prefixes the second column with a
// text marker so spreadsheet tools keep it as a string.
//
//	row := transform.Row(rec)
//	lag, _ := row.Get(transform.ColumnLag)
package transform
