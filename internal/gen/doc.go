// Package gen renders planned validated slice types into Go source.
//
// Generation uses text/template + go/format. Each family has one named
// fragment; fragments are emitted per type in the planned family order, so
// the output depends only on the model.
//
// Every construction path in the generated code calls a single unexported
// gate per type (check<Type>), which runs the user's predicate and returns
// its error unchanged.
package gen
