package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
)

// HashProvider is a deterministic, offline embedding provider. Vectors are
// derived from a content hash, so identical texts always embed identically
// and no network is involved. Meant for tests and the local demo; it has no
// semantic quality whatsoever.
type HashProvider struct {
	Dimension int
}

func NewHashProvider(dimension int) EmbeddingProvider {
	if dimension <= 0 {
		dimension = 64
	}
	return &HashProvider{Dimension: dimension}
}

func (p *HashProvider) Generate(_ context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	_ = taskType

	// stretch the content hash into enough pseudo-random bytes
	stream := make([]byte, 0, p.Dimension*2)
	block := sha256.Sum256([]byte(text))
	for len(stream) < p.Dimension*2 {
		stream = append(stream, block[:]...)
		block = sha256.Sum256(block[:])
	}

	values := make([]float32, p.Dimension)
	for i := 0; i < p.Dimension; i++ {
		bits := binary.BigEndian.Uint16(stream[i*2 : i*2+2])
		// map to [-1, 1]
		values[i] = float32(bits)/32767.5 - 1.0
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: NormalizeVector(values)},
	}, nil
}
