package graph

import (
	"github.com/minio/highwayhash"
)

// hashKey is fixed so hashes of the same content match across runs
var hashKey = []byte("interlinked:swift-source-hash-32")

// Hash returns 64 bit highwayhash of a source, equal hashes mean synthesis left it unchanged
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = hash.Write(data); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}
