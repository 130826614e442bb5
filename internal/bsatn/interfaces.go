package bsatn

// IStructuralReadWrite defines the minimal contract for a type that wants to
// bypass reflection and handle its own BSATN encoding/decoding.
type IStructuralReadWrite interface {
	// WriteBSATN encodes the receiver into BSATN format using the provided Writer.
	WriteBSATN(writer *Writer) error

	// ReadBSATN decodes BSATN data from the provided Reader into the receiver.
	// The receiver should be a pointer to the type being decoded.
	ReadBSATN(reader *Reader) error
}

// IStructuralWriter is the write half of IStructuralReadWrite. Value
// receivers commonly implement only this half.
type IStructuralWriter interface {
	WriteBSATN(writer *Writer) error
}

// IStructuralReader is the read half of IStructuralReadWrite.
type IStructuralReader interface {
	ReadBSATN(reader *Reader) error
}
