package payload

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
	}{
		{"empty", Payload{}},
		{"epoch only", Payload{Epoch: 42}},
		{"display list only", Payload{Epoch: 1, DisplayListData: []byte{1, 2, 3}}},
		{"aux only", Payload{Epoch: 7, AuxiliaryListsData: []byte{9, 8}}},
		{"both blocks", Payload{
			Epoch:              0xFFFFFFFF,
			DisplayListData:    bytes.Repeat([]byte{0xAB}, 1024),
			AuxiliaryListsData: []byte{0, 0, 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromData(tt.p.ToData())
			if err != nil {
				t.Fatalf("FromData: %v", err)
			}
			if got.Epoch != tt.p.Epoch {
				t.Errorf("epoch = %d, want %d", got.Epoch, tt.p.Epoch)
			}
			if !bytes.Equal(got.DisplayListData, tt.p.DisplayListData) {
				t.Errorf("display list bytes differ")
			}
			if !bytes.Equal(got.AuxiliaryListsData, tt.p.AuxiliaryListsData) {
				t.Errorf("auxiliary bytes differ")
			}
		})
	}
}

func TestLayout(t *testing.T) {
	p := Payload{
		Epoch:              0x01020304,
		DisplayListData:    []byte{0xAA, 0xBB},
		AuxiliaryListsData: []byte{0xCC},
	}
	data := p.ToData()

	if got := binary.LittleEndian.Uint32(data); got != 0x01020304 {
		t.Errorf("epoch field = %#x, want 0x01020304", got)
	}
	if got := binary.LittleEndian.Uint64(data[4:]); got != 2 {
		t.Errorf("display list length = %d, want 2", got)
	}
	if data[12] != 0xAA || data[13] != 0xBB {
		t.Errorf("display list bytes not at expected offset")
	}
	if got := binary.LittleEndian.Uint64(data[14:]); got != 1 {
		t.Errorf("aux length = %d, want 1", got)
	}
	if data[22] != 0xCC {
		t.Errorf("aux byte not at expected offset")
	}
	if len(data) != 23 {
		t.Errorf("total length = %d, want 23", len(data))
	}
}

func TestFramingErrors(t *testing.T) {
	good := Payload{
		Epoch:           3,
		DisplayListData: []byte{1, 2, 3, 4},
	}.ToData()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty buffer", nil},
		{"shorter than header", good[:7]},
		{"truncated display list", good[:14]},
		{"missing aux prefix", good[:16]},
		{"oversized length", func() []byte {
			d := append([]byte(nil), good...)
			binary.LittleEndian.PutUint64(d[4:], 1<<40)
			return d
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromData(tt.data)
			if !errors.Is(err, ErrFraming) {
				t.Errorf("FromData = %v, want ErrFraming", err)
			}
		})
	}
}

func TestFromDataCopies(t *testing.T) {
	p := Payload{Epoch: 1, DisplayListData: []byte{1, 2, 3}}
	data := p.ToData()
	got, err := FromData(data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	data[12] = 0xFF
	if got.DisplayListData[0] == 0xFF {
		t.Error("decoded block aliases the input buffer")
	}
}
