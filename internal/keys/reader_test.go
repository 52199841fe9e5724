package keys

import (
	"errors"
	"io"
	"strings"
	"testing"

	"pkt.systems/viu/schema"
)

type recorder struct {
	events []schema.EventType
}

func (r *recorder) Publish(ev schema.Event) {
	r.events = append(r.events, ev.Type)
}

func decode(t *testing.T, input string) []schema.EventType {
	t.Helper()
	rec := &recorder{}
	if err := Read(strings.NewReader(input), rec); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	return rec.events
}

func TestReadArrowUpYieldsOneScrollUp(t *testing.T) {
	got := decode(t, "\x1b[A")
	if len(got) != 1 || got[0] != schema.EventScrollUp {
		t.Fatalf("expected exactly one scroll up, got %v", got)
	}
}

func TestReadBindings(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []schema.EventType
	}{
		{"quit", "q", []schema.EventType{schema.EventQuit}},
		{"j", "j", []schema.EventType{schema.EventScrollDown}},
		{"k", "k", []schema.EventType{schema.EventScrollUp}},
		{"arrow down", "\x1b[B", []schema.EventType{schema.EventScrollDown}},
		{"ss3 arrows", "\x1bOA\x1bOB", []schema.EventType{schema.EventScrollUp, schema.EventScrollDown}},
		{"ignored letters", "xyzQJK", nil},
		{"arrow right ignored", "\x1b[C", nil},
		{"page up ignored", "\x1b[5~", nil},
		{"modified arrow ignored", "\x1b[1;5Aj", []schema.EventType{schema.EventScrollDown}},
		{"lone escape", "\x1bq", []schema.EventType{schema.EventQuit}},
		{"double escape", "\x1b\x1b[A", []schema.EventType{schema.EventScrollUp}},
		{"sequence", "jj\x1b[Akq", []schema.EventType{
			schema.EventScrollDown, schema.EventScrollDown, schema.EventScrollUp, schema.EventScrollUp, schema.EventQuit,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decode(t, tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("event %d: expected %v, got %v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestReadAbandonsOverlongCSI(t *testing.T) {
	got := decode(t, "\x1b[123456789j")
	if len(got) != 1 || got[0] != schema.EventScrollDown {
		t.Fatalf("expected decoding to resume after overlong sequence, got %v", got)
	}
}

func TestReadTruncatedEscape(t *testing.T) {
	if got := decode(t, "\x1b["); len(got) != 0 {
		t.Fatalf("expected no events, got %v", got)
	}
}
