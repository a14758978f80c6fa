package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LineSink receives human-readable progress lines. A UI streams these
// to the operator while a discovery or reconciliation run is in
// flight; the default sink writes them through logrus.
type LineSink interface {
	Line(format string, args ...interface{})
}

type logrusSink struct {
	session uuid.UUID
}

// NewLogrusSink returns a LineSink logging through logrus. Every run
// gets its own session ID so interleaved runs can be told apart in the
// stream.
func NewLogrusSink() LineSink {
	return &logrusSink{session: uuid.New()}
}

func (s *logrusSink) Line(format string, args ...interface{}) {
	logrus.WithField("session", s.session.String()).Infof(format, args...)
}

type writerSink struct {
	w io.Writer
}

// NewWriterSink returns a LineSink writing plain lines to w.
func NewWriterSink(w io.Writer) LineSink {
	return &writerSink{w: w}
}

func (s *writerSink) Line(format string, args ...interface{}) {
	fmt.Fprintf(s.w, format+"\n", args...)
}
