// Package id provides time-ordered identifiers rendered as compact strings
// over small alphabets.
//
// # Schemes
//
// A Scheme pairs an ordered alphabet (base = alphabet length) with an
// optional bit-field Layout and a clock Unit. Three schemes are built in:
//
//	micro15  alphabet 0-9a-e, microsecond ticks, no layout
//	milli36  alphabet 0-9a-z, millisecond ticks, [timestamp_ms:48][offset:16]
//	micro26  alphabet a-z,    microsecond ticks, no layout
//
// Schemes with a layout are bounded: their values fit in the layout width
// (64 bits for milli36). Schemes without one carry the raw tick and are
// unbounded.
//
// # Generation
//
// A Generator reads its Clock and advances a State under a mutex:
//   - If the tick differs from the last one seen, the offset resets to 0.
//   - Otherwise the offset increments, wrapping modulo 2^offsetBits. A wrap is
//     reported to the Observer and generation continues.
//
// Unbounded schemes have no offset. Two calls within the same microsecond
// return the same value; the Observer is told, the value is not altered.
//
// # Usage
//
//	reg, err := id.NewRegistry(id.WithOffsetMinutes(9 * 60))
//	if err != nil {
//		return err
//	}
//	iss, _ := reg.Lookup("milli36")
//	s := iss.Generate()          // e.g. "1a2b3c4d5e6f"
//	v, err := iss.Decode(s)      // *big.Int
//	d := iss.Describe(s)         // timestamp, offset, readable form
package id
