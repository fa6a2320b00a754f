// Package symbol implements JNI-style export symbol naming.
//
// A managed caller resolves the native entry point by name: the exported
// symbol is derived from the caller's fully-qualified type and method with
// a fixed escaping rule, so the dynamic linker can tell package separators
// from literal underscores.
//
//	Export{Type: "com.auraframes.fx.MainActivity", Method: "stringFromJNI"}
//	    -> "Java_com_auraframes_fx_MainActivity_stringFromJNI"
//
// Dots in the qualified type become underscores; a literal underscore in
// any name escapes to "_1", a semicolon to "_2" and "[" to "_3".
package symbol
