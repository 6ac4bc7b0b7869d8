package cmd

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/cmdline"
)

func writeFile(t *testing.T, path, data string) string {
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestFlatten(t *testing.T) {
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	realDir, err := filepath.EvalSymlinks(dir)
	assert.NoError(t, err)

	a := writeFile(t, filepath.Join(dir, "a.bam"), "")
	b := writeFile(t, filepath.Join(dir, "b.bam"), "")
	list := writeFile(t, filepath.Join(dir, "inputs.fofn"), b+"\n"+a+"\n")

	var out bytes.Buffer
	assert.NoError(t, flatten(ctx, flattenOpts{checkExists: true}, []string{a, list}, &out))
	expect.EQ(t, out.String(), a+"\n"+b+"\n"+a+"\n")

	out.Reset()
	assert.NoError(t, flatten(ctx, flattenOpts{abs: true}, []string{b}, &out))
	expect.EQ(t, out.String(), filepath.Join(realDir, "b.bam")+"\n")

	out.Reset()
	missing := filepath.Join(dir, "missing.bam")
	err = flatten(ctx, flattenOpts{checkExists: true}, []string{a, missing}, &out)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), missing)

	err = flatten(ctx, flattenOpts{}, []string{a, "notes.txt"}, &out)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "notes.txt")
}

func TestTranscribeCommand(t *testing.T) {
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	in := writeFile(t, filepath.Join(dir, "matrix.tsv"),
		"col\trow\tvalue\tlogscale\n0\t0\t1\t0\n0\t1\t1\t0\n1\t0\t1\t0.5\n1\t1\t1\t0.5\n")

	var out bytes.Buffer
	assert.NoError(t, transcribe(ctx, transcribeOpts{counterWeight: 1, reversed: true}, in, &out))
	expect.EQ(t, out.String(), "(2, 2)\n"+
		" (0, 2) (0, 2)\n"+
		"lg: \t0.000\t0.500\n"+
		"lgS: \t0.000\t0.500\n"+
		"\t0.500\t0.000\n"+
		"\t0.500\t0.000\n")

	gzPath := filepath.Join(dir, "transcript.txt.gz")
	err := withOutput(ctx, gzPath, nil, func(w io.Writer) error {
		return transcribe(ctx, transcribeOpts{counterWeight: 1, reversed: true}, in, w)
	})
	assert.NoError(t, err)
	f, err := os.Open(gzPath)
	assert.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	data, err := ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, string(data), out.String())
}

func writeBAM(t *testing.T, path, desc string) string {
	h, err := sam.NewHeader([]byte("@HD\tVN:1.5\n@RG\tID:rg1\tPL:PACBIO\tDS:"+desc+"\n"), nil)
	assert.NoError(t, err)
	f, err := os.Create(path)
	assert.NoError(t, err)
	w, err := bam.NewWriter(f, h, 1)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())
	return path
}

func TestCheckChemistry(t *testing.T) {
	ctx := context.Background()
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	const sequel = "READTYPE=SUBREAD;BINDINGKIT=100-862-200;SEQUENCINGKIT=100-861-800;BASECALLERVERSION=4.0.0"
	good := writeBAM(t, filepath.Join(dir, "good.bam"), sequel+";Ipd:CodecV1=ip;PulseWidth:CodecV1=pw")
	bad := writeBAM(t, filepath.Join(dir, "bad.bam"), sequel)
	list := writeFile(t, filepath.Join(dir, "all.fofn"), good+"\n"+bad+"\n")

	var out bytes.Buffer
	assert.NoError(t, checkChemistry(ctx, []string{good}, &out))
	expect.EQ(t, out.String(), "#PATH\tREADGROUP\tCHEMISTRY\tIPD\tPULSEWIDTH\n"+
		good+"\trg1\tS/P2-C2\tyes\tyes\n")

	out.Reset()
	err := checkChemistry(ctx, []string{list}, &out)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "base features")
	expect.EQ(t, out.String(), "#PATH\tREADGROUP\tCHEMISTRY\tIPD\tPULSEWIDTH\n"+
		good+"\trg1\tS/P2-C2\tyes\tyes\n"+
		bad+"\trg1\tS/P2-C2\tno\tno\n")
}

func TestCommandUsageErrors(t *testing.T) {
	for _, test := range []struct {
		cmd  *cmdline.Command
		args []string
		msg  string
	}{
		{newCmdTranscribe(), nil, "transcribe takes one matrix path"},
		{newCmdTranscribe(), []string{"a.tsv", "b.tsv"}, "transcribe takes one matrix path"},
		{newCmdTranscribe(), []string{"-counter-weight=0", "a.tsv"}, "-counter-weight must be positive"},
		{newCmdFlatten(), nil, "flatten takes at least one ref"},
		{newCmdCheckChemistry(), nil, "check-chemistry takes at least one ref"},
	} {
		var stdout, stderr bytes.Buffer
		env := cmdline.EnvFromOS()
		env.Stdout = &stdout
		env.Stderr = &stderr
		err := cmdline.ParseAndRun(test.cmd, env, test.args)
		expect.EQ(t, err, cmdline.ErrUsage, "args %v", test.args)
		expect.HasSubstr(t, stderr.String(), test.msg)
	}
}
