// Package et provides small helpers for scripting style go code.
//
// [Extract] and its fixed size variants [Extract1], [Extract2] and [Extract3] destructure
// a map into local variables. If no keys are given, the keys are inferred from the names
// of the variables on the calling source line:
//
//	person := map[string]any{"name": "John", "age": 30, "city": "New York"}
//	name, age, err := et.Extract2(person, nil)
//
// Inference reads the callers source file at runtime. It does not work if the binary was
// built with -trimpath or runs without access to its sources; pass the keys explicitly
// in that case. [Into] is the reflection based alternative that takes the keys from the
// fields of a struct.
//
// [Get] safely walks nested maps, slices, structs and yaml documents using a path,
// [NowUTC] reads the current time from an injectable [Clock], and [NewService] and
// [CatchBreak] support lightweight service objects that log their construction and
// can stop early using a [Break].
package et
