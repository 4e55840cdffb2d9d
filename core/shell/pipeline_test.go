package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riversh/riversh/core/vos"
)

func TestParsePipelineBasic(t *testing.T) {
	pipeline, err := ParsePipeline("cat unsorted | sort")
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 2)

	first := pipeline.Items[0].Job
	assert.Equal(t, "cat", first.Command)
	assert.Equal(t, []string{"cat", "unsorted"}, first.Args)
	assert.Equal(t, Pipe, first.Kind)
	assert.Equal(t, RedirectStdout, first.PipeFrom)

	last := pipeline.Items[1].Job
	assert.Equal(t, "sort", last.Command)
	assert.Equal(t, Last, last.Kind)
}

func TestParsePipelinePipeStreams(t *testing.T) {
	cases := []struct {
		op   string
		want RedirectFrom
	}{
		{"|", RedirectStdout},
		{"^|", RedirectStderr},
		{"&|", RedirectBoth},
	}

	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			pipeline, err := ParsePipeline("make " + tc.op + " less")
			require.NoError(t, err)
			require.Len(t, pipeline.Items, 2)
			assert.Equal(t, Pipe, pipeline.Items[0].Job.Kind)
			assert.Equal(t, tc.want, pipeline.Items[0].Job.PipeFrom)
		})
	}
}

func TestParsePipelineSequencing(t *testing.T) {
	pipeline, err := ParsePipeline("configure && make || report")
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 3)
	assert.Equal(t, And, pipeline.Items[0].Job.Kind)
	assert.Equal(t, Or, pipeline.Items[1].Job.Kind)
	assert.Equal(t, Last, pipeline.Items[2].Job.Kind)
}

func TestParsePipelineRedirections(t *testing.T) {
	pipeline, err := ParsePipeline("cmd > out >> log ^> errs ^>> errlog &> all &>> alllog")
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 1)

	assert.Equal(t, []Redirection{
		{From: RedirectStdout, File: "out"},
		{From: RedirectStdout, File: "log", Append: true},
		{From: RedirectStderr, File: "errs"},
		{From: RedirectStderr, File: "errlog", Append: true},
		{From: RedirectBoth, File: "all"},
		{From: RedirectBoth, File: "alllog", Append: true},
	}, pipeline.Items[0].Outputs)
	assert.Equal(t, []string{"cmd"}, pipeline.Items[0].Job.Args)
}

func TestParsePipelineInputs(t *testing.T) {
	pipeline, err := ParsePipeline("sort < a < b <<< hello")
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 1)

	assert.Equal(t, []Input{
		{Kind: InputFile, Value: "a"},
		{Kind: InputFile, Value: "b"},
		{Kind: InputHereString, Value: "hello"},
	}, pipeline.Items[0].Inputs)
}

func TestParsePipelineBackground(t *testing.T) {
	pipeline, err := ParsePipeline("sleep 10 &")
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 1)
	assert.Equal(t, Background, pipeline.Items[0].Job.Kind)

	_, err = ParsePipeline("sleep 10 & echo done")
	assert.Error(t, err)
}

func TestParsePipelineErrors(t *testing.T) {
	cases := []string{
		"| sort",
		"cat a | | sort",
		"cmd >",
		"cmd <",
		"cmd <<<",
		"a && && b",
	}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			_, err := ParsePipeline(input)
			assert.Error(t, err)
		})
	}
}

func TestParsePipelineEmpty(t *testing.T) {
	pipeline, err := ParsePipeline("")
	require.NoError(t, err)
	assert.Empty(t, pipeline.Items)
}

func TestParsePipelineQuotedOperators(t *testing.T) {
	pipeline, err := ParsePipeline(`echo "a | b"`)
	require.NoError(t, err)
	require.Len(t, pipeline.Items, 1)
	assert.Equal(t, []string{"echo", `"a | b"`}, pipeline.Items[0].Job.Args)
}

func TestPipelineExpand(t *testing.T) {
	env := vos.NewMapEnv()
	env.Setenv("TARGET", "all")

	pipeline, err := ParsePipeline("make $TARGET | tee")
	require.NoError(t, err)
	pipeline.Expand(&EnvExpander{Env: env}, NewMemoryHistory(0))

	assert.Equal(t, []string{"make", "all"}, pipeline.Items[0].Job.Args)
}
