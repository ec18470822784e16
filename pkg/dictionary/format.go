// Package dictionary implements the on-device reader for the compiled
// radix-tree dictionary binary format (spec.md §4.2). The companion
// offline compiler lives in pkg/dictionary/compile; this package owns the
// format's constants and the command codec shared by both.
//
// Node/header encode-decode style (fixed-offset fields, encoding/binary,
// no reflection) grounded on the teacher's cache_binary.go header
// encode/decode pair (magic + version + fixed-width fields), adapted from
// a 256-byte hash-cache header to this format's smaller
// preamble+header+tree-root-offset layout. Lookup algorithm ported from
// original_source/code/shittyengine/src/dict/tree.rs (RadixTreeDictionary)
// to the procedure documented in spec.md §4.2.4.
package dictionary

import (
	"encoding/binary"
	"fmt"

	"github.com/chordforge/steno/pkg/command"
)

// Preamble constants (spec.md §4.2.1 item 1).
var (
	// Magic is the fixed magic byte sequence every dictionary file begins
	// with.
	Magic = [4]byte{'S', 'T', 'B', '1'}
	// Version is the format version byte this package reads and writes.
	Version byte = 1
)

// PreambleSize is the byte length of Magic plus the version byte.
const PreambleSize = len(Magic) + 1

// MaxChildCount is the largest number of children a single node may have
// (spec.md §4.2.2: "child_count ≤ 255", stored offset by one in a single
// byte).
const MaxChildCount = 255

// MaxWriteLength is the longest string a single Write command's 6-bit
// length field can carry (spec.md §4.2.3: "lower 6 bits carry string
// length (0-63)").
const MaxWriteLength = 63

// endOfList is the command-list terminator (spec.md §4.2.3, §4.2.1 item 4).
const endOfList = 0xFF

// capitalizationCode/attachmentCode map the enum values to the 3-bit/2-bit
// wire codes from spec.md §3's variant table, independent of the Go
// package's iota ordering (pkg/command orders its constants for Go
// idiom/readability, not wire compatibility).
var capitalizationCode = map[command.CapitalizationMode]byte{
	command.Unchanged:           0,
	command.Lowercase:           1,
	command.Uppercase:           2,
	command.Capitalize:          3,
	command.LowerThenCapitalize: 4,
	command.LowercaseNext:       5,
	command.CapitalizeNext:      6,
	command.UppercaseNext:       7,
}

var capitalizationFromCode = invertCapitalization(capitalizationCode)

func invertCapitalization(m map[command.CapitalizationMode]byte) map[byte]command.CapitalizationMode {
	out := make(map[byte]command.CapitalizationMode, len(m))
	for k, v := range m {
		out[v] = k
	}

	return out
}

var attachmentCode = map[command.AttachmentMode]byte{
	command.Delimited: 0,
	command.Glue:      1,
	command.Next:      2,
	command.Always:    3,
}

var attachmentFromCode = invertAttachment(attachmentCode)

func invertAttachment(m map[command.AttachmentMode]byte) map[byte]command.AttachmentMode {
	out := make(map[byte]command.AttachmentMode, len(m))
	for k, v := range m {
		out[v] = k
	}

	return out
}

// EncodeCommand appends cmd's wire encoding to buf per spec.md §4.2.3 and
// returns the result.
func EncodeCommand(buf []byte, cmd command.Command) ([]byte, error) {
	switch cmd.Kind {
	case command.Write:
		if len(cmd.Text) > MaxWriteLength {
			return nil, fmt.Errorf("dictionary: write text %q exceeds %d bytes", cmd.Text, MaxWriteLength)
		}

		buf = append(buf, byte(len(cmd.Text)))
		buf = append(buf, cmd.Text...)

		return buf, nil

	case command.ChangeCapitalization:
		code, ok := capitalizationCode[cmd.Capitalization]
		if !ok {
			return nil, fmt.Errorf("dictionary: unknown capitalization mode %v", cmd.Capitalization)
		}

		buf = append(buf, 0b01_000_000|(code<<3))

		return buf, nil

	case command.ChangeAttachment:
		code, ok := attachmentCode[cmd.Attachment]
		if !ok {
			return nil, fmt.Errorf("dictionary: unknown attachment mode %v", cmd.Attachment)
		}

		buf = append(buf, 0b10_00_0000|(code<<4))

		return buf, nil

	case command.ResetFormatting:
		buf = append(buf, 0b110_00000)

		return buf, nil

	default:
		return nil, fmt.Errorf("dictionary: unknown command kind %v", cmd.Kind)
	}
}

// EncodeCommandList appends the wire encoding of cmds terminated by the
// end-of-list sentinel (spec.md §4.2.1 item 4, §4.2.3).
func EncodeCommandList(buf []byte, cmds []command.Command) ([]byte, error) {
	var err error

	for _, cmd := range cmds {
		buf, err = EncodeCommand(buf, cmd)
		if err != nil {
			return nil, err
		}
	}

	return append(buf, endOfList), nil
}

// DecodeCommandList decodes a sentinel-terminated command list starting at
// data[0], returning the commands and the number of bytes consumed
// (including the sentinel).
func DecodeCommandList(data []byte) ([]command.Command, int, error) {
	var (
		cmds []command.Command
		pos  int
	)

	for {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: missing end-of-list sentinel", ErrCorruptTranslation)
		}

		header := data[pos]
		if header == endOfList {
			return cmds, pos + 1, nil
		}

		switch {
		case header&0b11_000000 == 0b00_000000:
			length := int(header & 0b00_111111)
			pos++

			if pos+length > len(data) {
				return nil, 0, fmt.Errorf("%w: truncated write payload", ErrCorruptTranslation)
			}

			cmds = append(cmds, command.NewWrite(string(data[pos:pos+length])))
			pos += length

		case header&0b11_000_000 == 0b01_000_000:
			code := (header >> 3) & 0b111

			mode, ok := capitalizationFromCode[code]
			if !ok {
				return nil, 0, fmt.Errorf("%w: unknown capitalization code %d", ErrCorruptTranslation, code)
			}

			cmds = append(cmds, command.NewChangeCapitalization(mode))
			pos++

		case header&0b11_00_0000 == 0b10_00_0000:
			code := (header >> 4) & 0b11

			mode, ok := attachmentFromCode[code]
			if !ok {
				return nil, 0, fmt.Errorf("%w: unknown attachment code %d", ErrCorruptTranslation, code)
			}

			cmds = append(cmds, command.NewChangeAttachment(mode))
			pos++

		case header&0b111_00000 == 0b110_00000:
			cmds = append(cmds, command.NewResetFormatting())
			pos++

		default:
			return nil, 0, fmt.Errorf("%w: unrecognized command header 0x%02x", ErrCorruptTranslation, header)
		}
	}
}

// put24 writes a big-endian 24-bit unsigned integer.
func put24(buf []byte, v uint32) {
	buf[0] = byte(v >> 16)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v)
}

// get24 reads a big-endian 24-bit unsigned integer.
func get24(buf []byte) uint32 {
	return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2])
}

// put32 is a thin wrapper kept for symmetry with put24/get24 at call
// sites that serialize the 4-byte tree-root offset.
func put32(buf []byte, v uint32) { binary.BigEndian.PutUint32(buf, v) }
func get32(buf []byte) uint32    { return binary.BigEndian.Uint32(buf) }
