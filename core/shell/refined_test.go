package shell

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/afero"
)

func TestRefinedJobDescriptions(t *testing.T) {
	cases := []struct {
		name      string
		job       RefinedJob
		wantShort string
		wantLong  string
	}{
		{
			name:      "external",
			job:       NewExternalJob("/bin/ls", []string{"ls", "-la"}),
			wantShort: "ls",
			wantLong:  "ls -la",
		},
		{
			name:      "builtin",
			job:       NewBuiltinJob("echo", []string{"echo", "hi"}),
			wantShort: "echo",
			wantLong:  "echo hi",
		},
		{
			name:      "function",
			job:       NewFunctionJob("greet", []string{"greet", "world"}),
			wantShort: "greet",
			wantLong:  "greet world",
		},
		{
			name:      "cat",
			job:       NewCatJob(nil),
			wantShort: "multi-input",
			wantLong:  "",
		},
		{
			name:      "tee",
			job:       NewTeeJob(nil, nil),
			wantShort: "multi-output",
			wantLong:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantShort, tc.job.Short())
			assert.Equal(t, tc.wantLong, tc.job.Long())
		})
	}
}

func TestDescribeGolden(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	jobs := []RefinedJob{
		NewExternalJob("/usr/bin/grep", []string{"grep", "-v", "^#"}),
		NewBuiltinJob("echo", []string{"echo", "done"}),
		NewCatJob(nil),
		NewTeeJob(nil, nil),
	}

	g.Assert(t, "describe", []byte(Describe(jobs)))
}

func TestRefine(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bin/true", []byte{}, 0755))

	resolver := &PathResolver{
		Fs:        fs,
		IsBuiltin: func(name string) bool { return name == "echo" },
		HasFunction: func(name string) bool {
			return name == "greet"
		},
		PathEnv: func() string { return "/bin" },
	}

	t.Run("builtin", func(t *testing.T) {
		job, err := Refine(NewJob([]string{"echo", "hi"}, Last), resolver)
		require.NoError(t, err)
		assert.IsType(t, &BuiltinJob{}, job)
	})

	t.Run("function", func(t *testing.T) {
		job, err := Refine(NewJob([]string{"greet"}, Last), resolver)
		require.NoError(t, err)
		assert.IsType(t, &FunctionJob{}, job)
	})

	t.Run("external", func(t *testing.T) {
		job, err := Refine(NewJob([]string{"true"}, Last), resolver)
		require.NoError(t, err)
		require.IsType(t, &ExternalJob{}, job)
		assert.Equal(t, "/bin/true", job.(*ExternalJob).Cmd.Path)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Refine(NewJob([]string{"missing"}, Last), resolver)
		assert.EqualError(t, err, "missing: command not found")
	})

	t.Run("builtin wins over external", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/bin/echo", []byte{}, 0755))
		job, err := Refine(NewJob([]string{"echo"}, Last), resolver)
		require.NoError(t, err)
		assert.IsType(t, &BuiltinJob{}, job)
	})
}
