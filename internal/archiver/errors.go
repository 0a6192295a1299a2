package archiver

import "fmt"

// ReorgDetectedError is returned when the next block from the node does not extend the
// archived tip.
type ReorgDetectedError struct {
	Height       uint64
	ArchivedHash string
	ParentHash   string
}

func (e *ReorgDetectedError) Error() string {
	return fmt.Sprintf("reorg detected at block %d: archived tip %s, node parent %s",
		e.Height, e.ArchivedHash, e.ParentHash)
}

// NewReorgError creates a ReorgDetectedError for the block at height whose parent is
// parentHash while the archive holds archivedHash at height-1.
func NewReorgError(height uint64, archivedHash, parentHash string) error {
	return &ReorgDetectedError{
		Height:       height,
		ArchivedHash: archivedHash,
		ParentHash:   parentHash,
	}
}
