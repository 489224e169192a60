package pigment

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/esimov/pigment/canvas"
	"github.com/esimov/pigment/codec"
	"github.com/esimov/pigment/utils"
	"github.com/stretchr/testify/assert"
)

func writeDocument(t *testing.T, path string) {
	t.Helper()

	c := canvas.New(6, 4)
	c.Set(1, 1, canvas.Fill(color.NRGBA{R: 200, G: 10, B: 10, A: 255}))
	c.AddLayer("Ink")
	c.Set(2, 2, canvas.Fill(color.NRGBA{B: 200, A: 255}))

	_, err := codec.SaveFile(path, codec.NewDocument(c))
	assert.NoError(t, err)
}

func TestExec_ConvertFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "drawing.pigment")
	writeDocument(t, src)

	dst := filepath.Join(dir, "drawing.png")
	op := &Ops{Src: src, Dst: dst, PipeName: "-", Stderr: io.Discard}
	assert.NoError(op.Execute())

	doc, err := codec.LoadFile(dst)
	assert.NoError(err)
	assert.Equal(1, doc.Canvas.LayerCount())
	assert.Equal(color.NRGBA{B: 200, A: 255}, doc.Canvas.Get(2, 2).NRGBA)
}

func TestExec_Errors(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "drawing.pigment")
	writeDocument(t, src)

	op := &Ops{Src: src, Dst: filepath.Join(dir, "out.txt"), PipeName: "-", Stderr: io.Discard}
	assert.Error(op.Execute())

	op = &Ops{Src: filepath.Join(dir, "missing.pigment"), Dst: filepath.Join(dir, "out.png"), PipeName: "-", Stderr: io.Discard}
	assert.Error(op.Execute())

	broken := filepath.Join(dir, "broken.pigment")
	assert.NoError(os.WriteFile(broken, []byte("{}"), 0644))
	out := filepath.Join(dir, "broken.png")
	op = &Ops{Src: broken, Dst: out, PipeName: "-", Stderr: io.Discard}
	assert.Error(op.Execute())

	_, err := os.Stat(out)
	assert.True(os.IsNotExist(err))
}

func TestExec_ConvertDirectory(t *testing.T) {
	assert := assert.New(t)

	src := t.TempDir()
	writeDocument(t, filepath.Join(src, "one.pigment"))
	assert.NoError(os.MkdirAll(filepath.Join(src, "nested"), 0755))
	writeDocument(t, filepath.Join(src, "nested", "two.png"))
	assert.NoError(os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip me"), 0644))

	dst := filepath.Join(t.TempDir(), "out")
	op := &Ops{
		Src:      src,
		Dst:      dst,
		PipeName: "-",
		Format:   codec.BMP,
		Workers:  2,
		Stderr:   io.Discard,
	}
	assert.NoError(op.Execute())

	entries, err := os.ReadDir(dst)
	assert.NoError(err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch([]string{"one.bmp", "two.bmp"}, names)
}

func TestExec_Helpers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(".pigment", extension(codec.Native))
	assert.Equal(".tiff", extension(codec.TIFF))
	assert.True(isValidExtension(".png", validExtensions))
	assert.False(isValidExtension(".txt", validExtensions))
}

func TestExec_SpinnerStoppedOnFailure(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "drawing.pigment")
	writeDocument(t, src)

	spinner := utils.NewSpinner("converting", time.Millisecond*10, false)
	spinner.SetWriter(io.Discard)

	op := &Ops{Src: src, Dst: filepath.Join(dir, "out.txt"), PipeName: "-", Spinner: spinner, Stderr: io.Discard}
	assert.Error(op.Execute())
	assert.False(spinner.Running())

	// The destination directory can't be created below a regular file.
	op = &Ops{Src: dir, Dst: filepath.Join(src, "out"), PipeName: "-", Spinner: spinner, Stderr: io.Discard}
	assert.Error(op.Execute())
	assert.False(spinner.Running())
}
