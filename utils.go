package go_buffer

// roundUp8 rounds v up to the next multiple of sizeGranularity.
func roundUp8(v int) int {
	return (v + sizeGranularity - 1) &^ (sizeGranularity - 1)
}

// noCopy flags by-value copies of the embedding struct as a go vet error.
// See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
