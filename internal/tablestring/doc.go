// Package tablestring decodes tableString cells into inline Lua tables.
//
// A cell holds entries separated by ';'. Each entry holds elements separated
// by ','. A schema.TableStringFormat decides which element becomes the entry
// key and how the value is built:
//
//	format: tableString[k:#1(int)|v:#table(type=#2(int),count=#3(int))]
//	cell:   1,2,10;5,1,3
//
// renders as
//
//	{
//		[1] = {
//			type = 2,
//			count = 10,
//		},
//		[5] = {
//			type = 1,
//			count = 3,
//		},
//	}
//
// Every failure wraps ErrTableString and names the offending entry by its
// 1-based ordinal and text. Row and column context is left to the caller.
package tablestring
