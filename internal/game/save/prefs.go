// Package save persists user preferences as a small binary record.
//
// The record is a four byte magic, a protobuf wire encoded body and a
// trailing CRC-32 of everything before it. A record that fails any check is
// treated the same as a missing one.
package save

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrNoData means no preferences have been saved.
	ErrNoData = errors.New("no saved preferences")
	// ErrCorrupt means the saved record failed validation.
	ErrCorrupt = errors.New("corrupt preferences record")
)

var magic = [4]byte{'S', 'R', 'P', '1'}

const crcLen = 4

// Rendering modes indexing Preferences.Rendering.
const (
	Mono = iota
	Stereo
)

// RenderingFlags are the shader toggles of one rendering mode.
type RenderingFlags struct {
	Shadows  bool
	Phong    bool
	Specular bool
}

// Preferences is the persisted user state.
type Preferences struct {
	EffectVolume       float64
	MusicVolume        float64
	Rendering          [2]RenderingFlags
	GyroscopicControls bool
}

const (
	fieldEffectVolume protowire.Number = 1
	fieldMusicVolume  protowire.Number = 2
	fieldMono         protowire.Number = 3
	fieldStereo       protowire.Number = 4
	fieldGyroscopic   protowire.Number = 5

	flagShadows  protowire.Number = 1
	flagPhong    protowire.Number = 2
	flagSpecular protowire.Number = 3
)

// Marshal encodes p into a record.
func Marshal(p Preferences) []byte {
	b := append([]byte(nil), magic[:]...)
	b = protowire.AppendTag(b, fieldEffectVolume, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.EffectVolume))
	b = protowire.AppendTag(b, fieldMusicVolume, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.MusicVolume))
	b = protowire.AppendTag(b, fieldMono, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalFlags(p.Rendering[Mono]))
	b = protowire.AppendTag(b, fieldStereo, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalFlags(p.Rendering[Stereo]))
	b = protowire.AppendTag(b, fieldGyroscopic, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeBool(p.GyroscopicControls))
	return binary.LittleEndian.AppendUint32(b, crc32.ChecksumIEEE(b))
}

func marshalFlags(f RenderingFlags) []byte {
	var b []byte
	for _, fv := range []struct {
		num protowire.Number
		on  bool
	}{
		{flagShadows, f.Shadows},
		{flagPhong, f.Phong},
		{flagSpecular, f.Specular},
	} {
		b = protowire.AppendTag(b, fv.num, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(fv.on))
	}
	return b
}

// Unmarshal decodes a record, starting from base for absent fields. NaN
// volumes count as absent.
func Unmarshal(data []byte, base Preferences) (Preferences, error) {
	if len(data) < len(magic)+crcLen || [4]byte(data[:4]) != magic {
		return base, ErrCorrupt
	}
	body := data[:len(data)-crcLen]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(data[len(body):]) {
		return base, ErrCorrupt
	}

	p := base
	b := body[len(magic):]
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return base, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldEffectVolume && typ == protowire.Fixed64Type,
			num == fieldMusicVolume && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return base, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			vol := math.Float64frombits(v)
			if math.IsNaN(vol) {
				// Unusable; keep the base volume.
				break
			}
			if num == fieldEffectVolume {
				p.EffectVolume = vol
			} else {
				p.MusicVolume = vol
			}
		case (num == fieldMono || num == fieldStereo) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return base, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			idx := Mono
			if num == fieldStereo {
				idx = Stereo
			}
			flags, err := unmarshalFlags(v, p.Rendering[idx])
			if err != nil {
				return base, err
			}
			p.Rendering[idx] = flags
			b = b[n:]
		case num == fieldGyroscopic && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return base, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			p.GyroscopicControls = protowire.DecodeBool(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return base, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return p, nil
}

func unmarshalFlags(b []byte, f RenderingFlags) (RenderingFlags, error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return f, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return f, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return f, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case flagShadows:
			f.Shadows = protowire.DecodeBool(v)
		case flagPhong:
			f.Phong = protowire.DecodeBool(v)
		case flagSpecular:
			f.Specular = protowire.DecodeBool(v)
		}
	}
	return f, nil
}
