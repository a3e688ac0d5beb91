package safe_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/utils/safe"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDrainAndClose(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("unread payload")}
	safe.DrainAndClose(context.Background(), body)

	gt.Bool(t, body.closed).True()
	rest, err := io.ReadAll(body)
	gt.NoError(t, err)
	gt.Array(t, rest).Length(0)

	// nil body is ignored
	safe.DrainAndClose(context.Background(), nil)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	safe.Write(context.Background(), &buf, []byte("hello"))
	gt.Value(t, buf.String()).Equal("hello")

	// errors are logged, not returned
	safe.Write(context.Background(), failingWriter{}, []byte("x"))
	safe.Write(context.Background(), nil, []byte("x"))
}
