package payload

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/framecore"
)

// ErrFraming is returned by FromData when a payload block is truncated
// or a declared block length exceeds the remaining buffer. A framing
// error is fatal to that payload only; the channel remains usable.
var ErrFraming = errors.New("payload: malformed payload block")

const headerSize = 4 + 8 // epoch + first length prefix

// Payload carries one display-list submission's bulk bytes: the built
// display list and its auxiliary data, stamped with the submission
// epoch. Payloads are transient: the consumer decodes them into scene
// structures and discards the block.
type Payload struct {
	Epoch              framecore.Epoch
	DisplayListData    []byte
	AuxiliaryListsData []byte
}

// ToData encodes the payload into a single byte block.
func (p Payload) ToData() []byte {
	data := make([]byte, 0, headerSize+len(p.DisplayListData)+8+len(p.AuxiliaryListsData))
	data = binary.LittleEndian.AppendUint32(data, uint32(p.Epoch))
	data = binary.LittleEndian.AppendUint64(data, uint64(len(p.DisplayListData)))
	data = append(data, p.DisplayListData...)
	data = binary.LittleEndian.AppendUint64(data, uint64(len(p.AuxiliaryListsData)))
	data = append(data, p.AuxiliaryListsData...)
	return data
}

// FromData decodes a byte block produced by ToData. It is the exact
// inverse of ToData for any well-formed input and returns a wrapped
// ErrFraming otherwise.
func FromData(data []byte) (Payload, error) {
	if len(data) < headerSize {
		return Payload{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrFraming, len(data))
	}
	epoch := framecore.Epoch(binary.LittleEndian.Uint32(data))
	rest := data[4:]

	dl, rest, err := readBlock(rest, "display list")
	if err != nil {
		return Payload{}, err
	}
	aux, _, err := readBlock(rest, "auxiliary lists")
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		Epoch:              epoch,
		DisplayListData:    dl,
		AuxiliaryListsData: aux,
	}, nil
}

// readBlock consumes one length-prefixed block, returning the block and
// the remaining buffer.
func readBlock(data []byte, what string) ([]byte, []byte, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%w: truncated %s length prefix", ErrFraming, what)
	}
	size := binary.LittleEndian.Uint64(data)
	rest := data[8:]
	if size > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("%w: %s block declares %d bytes but %d remain",
			ErrFraming, what, size, len(rest))
	}
	block := make([]byte, size)
	copy(block, rest[:size])
	return block, rest[size:], nil
}
