// Package repair turns raw accumulated tool-call argument text into a
// structured parameter mapping.
//
// Providers differ in what they actually put on the wire. Most emit a JSON
// document split across many chunks; some serialize the document twice, so the
// reassembled text is a JSON string containing JSON ("double-escaping"); some
// emit JSON with mechanical damage (truncation, single quotes); and some, under
// certain prompting styles, abandon structured calling entirely and enumerate
// items in prose.
//
// [Repair] applies a fixed chain of attempts, each only after the previous one
// failed:
//
//  1. direct parse (empty input parses to an empty mapping, not a failure)
//  2. double-escape detection and repair
//  3. lenient malformed-JSON repair (only when Options.LenientJSON)
//  4. fallback text extraction (only when Options.AllowTextFallback and the
//     tool's schema hint is a list — see [ExtractList])
//
// Every parse failure passes through the whole chain before being reported as
// invalid. A chain that rejects on the first parse error silently breaks every
// provider that cannot emit pure single-pass JSON, with a failure mode that
// looks like "tool calling is broken" rather than "parsing needs one more
// pass" — the chain exists to prevent exactly that regression.
//
// All functions in this package are pure and bounded by input length.
package repair
