package connection

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConnErr(t *testing.T) {
	err := NewConnErr(ConnLoopBreak).AddDesc("read from session conn").Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatal("ConnErr must unwrap to its cause")
	}
	if err.Code() != ConnLoopBreak {
		t.Fatalf("expected code: %d\tgot: %d", ConnLoopBreak, err.Code())
	}
	if !strings.Contains(err.Error(), "read from session conn") {
		t.Fatalf("description missing from: %s", err.Error())
	}

	bare := NewConnErr(ConnInvalidMsgType).AddDesc("invalid")
	if bare.Unwrap() != nil {
		t.Fatal("unexpected cause")
	}
}
