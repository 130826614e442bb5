// Package variant implements a discriminated union: a container that holds
// exactly one of a fixed, ordered list of alternative types at a time.
//
// The alternative list is described once by a *Table built from typed Alt
// descriptors:
//
//	shapes := variant.MustTable(
//		variant.Alt[int]("int"),
//		variant.Alt[float32]("float"),
//		variant.Alt[string]("string"),
//	)
//	v, _ := variant.From(shapes, 43)   // holds int
//	_ = variant.Assign(v, 42)          // assigns the int in place
//	p, _ := variant.GetAt[int](v, 0)   // *p == 42
//
// A Variant tracks its live alternative with a discriminator. An instance
// whose construction failed holds no alternative at all and reports
// Valueless; accessing it yields a *BadAccess error.
//
// Lifecycle hooks supplied through AltOption values stand in for
// constructors, assignment operators and destructors. Hook errors propagate
// to the caller unchanged and the package only guarantees where the
// discriminator ends up afterwards.
//
// Visitors are overload sets built with Match and dispatched over one or more
// variants through a flattened mixed-radix key; see Visit.
package variant
