package commands

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversh/riversh/core/shell"
	"github.com/riversh/riversh/core/vos/vostest"
)

func TestExit(t *testing.T) {
	cases := []struct {
		name       string
		args       []string
		wantStatus int
		wantQuit   int
	}{
		{name: "plain", args: []string{"exit"}},
		{name: "status", args: []string{"exit", "3"}, wantStatus: 3, wantQuit: 3},
		{name: "non-numeric", args: []string{"exit", "nope"}, wantStatus: 2, wantQuit: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quit := -1
			cmd := vostest.Command(NewExit(func(status int) { quit = status }), tc.args[0], tc.args[1:]...)
			_, err := cmd.CombinedOutput()
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, cmd.ExitStatus)
			assert.Equal(t, tc.wantQuit, quit)
		})
	}
}

func TestHistory(t *testing.T) {
	hist := shell.NewMemoryHistory(0)
	hist.Add("echo one")
	hist.Add("echo two")

	cmd := vostest.Command(NewHistory(hist), "history")
	out, err := cmd.Output()
	require.NoError(t, err)

	assert.Equal(t, 0, cmd.ExitStatus)
	assert.Equal(t, "    1  echo one\n    2  echo two\n", string(out))
}

func TestWhich(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bin/ls", []byte("#!"), 0755))

	resolver := &shell.PathResolver{
		Fs:        fs,
		IsBuiltin: IsBuiltin,
		PathEnv:   func() string { return "/bin" },
	}

	cases := []struct {
		name       string
		args       []string
		wantStatus int
		wantOut    string
	}{
		{name: "builtin", args: []string{"which", "echo"}, wantOut: "echo: shell builtin\n"},
		{name: "external", args: []string{"which", "ls"}, wantOut: "/bin/ls\n"},
		{name: "missing", args: []string{"which", "nope"}, wantStatus: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := vostest.Command(NewWhich(resolver), tc.args[0], tc.args[1:]...)
			out, err := cmd.Output()
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, cmd.ExitStatus)
			assert.Equal(t, tc.wantOut, string(out))
		})
	}
}

func TestTrueFalse(t *testing.T) {
	trueCmd := vostest.Command(True, "true")
	require.NoError(t, trueCmd.Run())
	assert.Equal(t, 0, trueCmd.ExitStatus)

	falseCmd := vostest.Command(False, "false")
	require.NoError(t, falseCmd.Run())
	assert.Equal(t, 1, falseCmd.ExitStatus)
}
