package filesystem

// AccessMode identifies the kind of access check requested by the -readable,
// -writable, and -executable primaries.
type AccessMode int

const (
	// AccessRead checks for read access.
	AccessRead AccessMode = iota
	// AccessWrite checks for write access.
	AccessWrite
	// AccessExecute checks for execute (or, for a directory, search) access.
	AccessExecute
)
