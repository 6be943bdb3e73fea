// Package pattern compiles path and filename templates containing named
// placeholders, such as "{varn}_{model}_{year:4d}.nc", into matchers and
// composers.
//
// A compiled Pattern works in both directions: Format substitutes concrete
// values for placeholders to produce a literal name, and Match parses a
// concrete name back into the placeholder values it was built from. Partially
// resolved templates render into scan plans that drive filesystem enumeration
// in the finder package.
//
// Placeholders are written as {name} or {name:spec}, where spec is an optional
// zero-pad flag, width and type tag (see ParseSpec). Literal braces are
// escaped by doubling: "{{" and "}}". All other literal text matches itself,
// even characters that are special to regular expressions or globs.
package pattern
