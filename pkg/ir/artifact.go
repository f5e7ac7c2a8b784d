package ir

// Artifact is one rendered output file
type Artifact struct {
	// Name is the file name relative to the target's output directory
	Name        string
	ContentType string
	Content     []byte
}
