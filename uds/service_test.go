package uds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startService(t *testing.T) *Service {
	t.Helper()
	dir, err := os.MkdirTemp("", "uds")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	cmds := map[string]CmdHnd{
		"echo": {
			Desc:  "echo arguments",
			Usage: "echo <words...>",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				_, err := fmt.Fprintln(w, strings.Join(args, " "))
				return err
			},
		},
		"fail": {
			Desc:  "always fails",
			Usage: "fail",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				return errors.New("nope")
			},
		},
	}
	s := NewService(context.Background(), filepath.Join(dir, "admin.sock"), cmds)
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		s.Stop()
		<-s.Done()
	})
	return s
}

func roundTrip(t *testing.T, s *Service, lines ...string) string {
	t.Helper()
	conn, err := net.Dial("unix", s.SocketPath)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))
	for _, l := range lines {
		_, err = fmt.Fprintln(conn, l)
		require.NoError(t, err)
	}
	var out strings.Builder
	_, _ = io.Copy(&out, bufio.NewReader(conn))
	return out.String()
}

func TestSocketPermissions(t *testing.T) {
	s := startService(t)
	info, err := os.Stat(s.SocketPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCommands(t *testing.T) {
	s := startService(t)
	assert.Equal(t, "hello world\n", roundTrip(t, s, "echo hello world"))

	out := roundTrip(t, s, "bogus", "fail")
	assert.Contains(t, out, "unknown command: bogus")
	assert.Contains(t, out, "error: nope")
	assert.Contains(t, out, "usage: fail")
}

func TestHelpIsSorted(t *testing.T) {
	s := startService(t)
	out := roundTrip(t, s, "help", "quit")
	assert.Less(t, strings.Index(out, "echo <words...>"), strings.Index(out, "always fails"))
}
