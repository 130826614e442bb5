package variant

// Monostate is an empty alternative. It is typically placed first so that a
// table whose other alternatives need construction arguments can still be
// default-constructed. All Monostate values are equal.
type Monostate struct{}

func (Monostate) String() string { return "monostate" }
