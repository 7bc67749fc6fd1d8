package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/basis-arb/ftxclient/common/convert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWriteFailure = errors.New("write failure")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errWriteFailure }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestMain(m *testing.M) {
	c := GenDefaultSettings()
	c.Level = defaultLevels
	if err := SetupGlobalLogger(&c); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestSplitLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Levels{Info: true, Debug: true, Warn: true, Error: true}, splitLevel("INFO|DEBUG|WARN|ERROR"))
	assert.Equal(t, Levels{Error: true}, splitLevel("error"))
	assert.Equal(t, Levels{}, splitLevel(""))
}

func TestSubLoggerWrites(t *testing.T) {
	sl := registerNewSubLogger("testwrites")
	var buf bytes.Buffer
	sl.SetOutput(&buf)

	Infof(sl, "hello %s", "world")
	Debugf(sl, "debug %d", 1)
	Warnf(sl, "warn")
	Errorf(sl, "error")
	Infoln(sl, "ln", 2)
	Errorln(sl, "oops")
	Info(sl, "plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "[INFO] | TESTWRITES | "), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], " | hello world"), lines[0])
	assert.Contains(t, lines[1], "[DEBUG]")
	assert.Contains(t, lines[2], "[WARN]")
	assert.Contains(t, lines[3], "[ERROR]")
	assert.True(t, strings.HasSuffix(lines[4], "ln2"), lines[4])

	buf.Reset()
	sl.SetLevels("ERROR")
	Infof(sl, "suppressed")
	Debugf(sl, "suppressed")
	assert.Empty(t, buf.String(), "disabled levels should not write")
	Errorf(sl, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilSubLogger(t *testing.T) {
	t.Parallel()
	var sl *SubLogger
	assert.NotPanics(t, func() { Infof(sl, "nothing") })
	assert.Empty(t, sl.Name())
}

func TestGetSubLogger(t *testing.T) {
	t.Parallel()
	sl, ok := GetSubLogger("exchange")
	require.True(t, ok)
	assert.Equal(t, ExchangeSys, sl)
	assert.Equal(t, "EXCHANGE", sl.Name())
	_, ok = GetSubLogger("nope")
	assert.False(t, ok)
}

func TestSetupSubLoggers(t *testing.T) {
	registerNewSubLogger("testsetup")
	err := SetupSubLoggers([]SubLoggerConfig{{Name: "testsetup", Level: "WARN", Output: "stderr"}})
	require.NoError(t, err)
	sl, ok := GetSubLogger("TESTSETUP")
	require.True(t, ok)
	assert.Equal(t, Levels{Warn: true}, sl.Levels)

	err = SetupSubLoggers([]SubLoggerConfig{{Name: "missing", Level: "WARN", Output: "stdout"}})
	assert.ErrorIs(t, err, errSubLoggerNotFound)

	err = SetupSubLoggers([]SubLoggerConfig{{Name: "testsetup", Level: "WARN", Output: "carrierpigeon"}})
	assert.ErrorIs(t, err, errUnhandledOutputWriter)
}

func TestSetupGlobalLoggerDisabled(t *testing.T) {
	sl := registerNewSubLogger("testdisabled")
	c := GenDefaultSettings()
	c.Enabled = convert.BoolPtr(false)
	require.NoError(t, SetupGlobalLogger(&c))
	var buf bytes.Buffer
	sl.SetOutput(&buf)
	Errorf(sl, "should not be written")
	assert.Empty(t, buf.String())

	c = GenDefaultSettings()
	c.Level = defaultLevels
	require.NoError(t, SetupGlobalLogger(&c))
	assert.ErrorIs(t, SetupGlobalLogger(nil), errConfigIsNil)
}

func TestGetWriters(t *testing.T) {
	t.Parallel()
	_, err := getWriters(nil)
	assert.ErrorIs(t, err, errSubloggerConfigIsNil)
	w, err := getWriters(&SubLoggerConfig{Output: "stdout|stderr"})
	require.NoError(t, err)
	mw, ok := w.(*multiWriter)
	require.True(t, ok)
	assert.Len(t, mw.writers, 2)
	_, err = getWriters(&SubLoggerConfig{Output: "stdout|console"})
	assert.ErrorIs(t, err, errWriterAlreadyLoaded)
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()
	var a, b bytes.Buffer
	mw, err := MultiWriter(&a, &b)
	require.NoError(t, err)
	assert.ErrorIs(t, mw.Add(&a), errWriterAlreadyLoaded)

	n, err := mw.Write([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "data", a.String())
	assert.Equal(t, "data", b.String())

	require.NoError(t, mw.Remove(&a))
	assert.ErrorIs(t, mw.Remove(&a), errWriterNotFound)
	_, err = mw.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, "data", a.String())
	assert.Equal(t, "datamore", b.String())

	require.NoError(t, mw.Add(failWriter{}))
	_, err = mw.Write([]byte("x"))
	assert.ErrorIs(t, err, errWriteFailure)

	short, err := MultiWriter(shortWriter{})
	require.NoError(t, err)
	_, err = short.Write([]byte("xyz"))
	assert.ErrorIs(t, err, io.ErrShortWrite)
}
