package pigment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/pigment/codec"
	"github.com/esimov/pigment/utils"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// validExtensions lists the source files picked up when converting a directory.
var validExtensions = []string{codec.NativeExt, ".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// Ops describes a conversion between document formats.
type Ops struct {
	Src, Dst, PipeName string
	// Format is the output format used for directories and for stdout.
	// Single files are converted to the format matching the destination extension.
	Format  codec.Format
	Workers int

	Logger  *zap.Logger
	Spinner *utils.Spinner
	// Stderr receives the status messages.
	Stderr io.Writer
}

// result holds the outcome of a single conversion.
type result struct {
	path string
	err  error
}

// Execute converts the source document, or every document found in the
// source directory, into the destination. URL sources are downloaded first.
func (op *Ops) Execute() error {
	if op.Logger == nil {
		op.Logger = zap.NewNop()
	}
	if op.Stderr == nil {
		op.Stderr = os.Stderr
	}
	if op.Format == "" {
		op.Format = codec.PNG
	}

	src := op.Src
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(op.Src)
		if f != nil {
			defer os.Remove(f.Name())
			defer f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source document: %w", err)
	}

	now := time.Now()
	if op.Spinner != nil {
		op.Spinner.Start()
	}
	defer op.stopSpinner()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
		err = op.convertDir(src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		format := op.Format
		if op.Dst != op.PipeName {
			f, ok := codec.FormatFromPath(op.Dst)
			if !ok {
				return fmt.Errorf("%v file type not supported", filepath.Ext(op.Dst))
			}
			format = f
		}
		err = op.process(src, op.Dst, format)
		op.stopSpinner()
		op.printOpStatus(op.Dst, err)
	default:
		err = fmt.Errorf("unsupported source: %s", src)
	}
	op.stopSpinner()
	if err != nil {
		return err
	}

	fmt.Fprintf(op.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

func (op *Ops) stopSpinner() {
	if op.Spinner != nil {
		op.Spinner.Stop()
	}
}

// convertDir converts the documents found in the directory tree concurrently.
func (op *Ops) convertDir(dir string) error {
	var wg sync.WaitGroup

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, dir, validExtensions)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var failed int
	for res := range ch {
		if res.err != nil {
			failed++
		}
		op.printOpStatus(res.path, res.err)
	}
	if err := <-errc; err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) could not be converted", failed)
	}
	return nil
}

// consumer reads the path names from the paths channel and converts each document.
func (op *Ops) consumer(
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		dst := filepath.Join(dest, name+extension(op.Format))
		err := op.process(src, dst, op.Format)

		select {
		case <-done:
			return
		case res <- result{
			path: dst,
			err:  err,
		}:
		}
	}
}

// process decodes the source document and encodes it into the destination.
func (op *Ops) process(in, out string, format codec.Format) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				op.Logger.Warn("could not close the source file", zap.Error(err))
			}
		}
	}()

	doc, err := codec.Decode(src)
	if err == nil {
		err = codec.Encode(dst, doc, format)
	}

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated file in case of an error
			os.Remove(f.Name())
		}
	}
	if err != nil {
		op.Logger.Debug("conversion failed", zap.String("src", in), zap.Error(err))
		return err
	}
	op.Logger.Debug("document converted", zap.String("src", in), zap.String("dst", out), zap.String("format", string(format)))

	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.Create(out)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the outcome of a conversion.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(op.Stderr, "%s %s",
			utils.DecorateText("\nError converting the document:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(op.Stderr, "\nThe document has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(strings.ToLower(filepath.Ext(f.Name())), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// extension returns the file extension written for format.
func extension(format codec.Format) string {
	if format == codec.Native {
		return codec.NativeExt
	}
	return "." + string(format)
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}
