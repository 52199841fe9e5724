// Package keys decodes raw terminal input into viewer events.
package keys

import (
	"bufio"
	"io"
	"unicode"

	"pkt.systems/viu/schema"
)

const escape = 0x1b

// maxCSI bounds how many bytes of an unknown control sequence are consumed.
const maxCSI = 8

// Publisher receives decoded events.
type Publisher interface {
	Publish(schema.Event)
}

// Read decodes bytes from r until it fails and publishes one event per
// recognized key. Unrecognized input is dropped. The read error is returned
// unchanged, io.EOF included.
func Read(r io.Reader, pub Publisher) error {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		switch b {
		case escape:
			if err := readEscape(br, pub); err != nil {
				return err
			}
		case 'q':
			pub.Publish(schema.Quit)
		case 'j':
			pub.Publish(schema.ScrollDown)
		case 'k':
			pub.Publish(schema.ScrollUp)
		}
	}
}

func readEscape(br *bufio.Reader, pub Publisher) error {
	b, err := br.ReadByte()
	if err != nil {
		return err
	}
	switch b {
	case '[':
		return readCSI(br, pub)
	case 'O':
		return readSS3(br, pub)
	default:
		// A lone ESC: decode the following byte on its own.
		return br.UnreadByte()
	}
}

func readCSI(br *bufio.Reader, pub Publisher) error {
	seq := make([]byte, 0, maxCSI)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		seq = append(seq, b)
		if b == '~' || unicode.IsLetter(rune(b)) {
			break
		}
		if len(seq) >= maxCSI {
			return nil
		}
	}
	switch string(seq) {
	case "A":
		pub.Publish(schema.ScrollUp)
	case "B":
		pub.Publish(schema.ScrollDown)
	}
	return nil
}

func readSS3(br *bufio.Reader, pub Publisher) error {
	b, err := br.ReadByte()
	if err != nil {
		return err
	}
	switch b {
	case 'A':
		pub.Publish(schema.ScrollUp)
	case 'B':
		pub.Publish(schema.ScrollDown)
	}
	return nil
}
