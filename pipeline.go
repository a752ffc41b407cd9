package wings

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bodgit/wings/palette"
	"github.com/bodgit/wings/ship"
)

type job struct {
	file string
	rel  string
	kind Kind
}

func readHead(file string) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, len(ship.Magic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// findPalette returns the first PCX image in the top level of dir, or an
// empty string if there isn't one.
func findPalette(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && Classify(e.Name(), nil) == KindPalette {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)

	return filepath.Join(dir, names[0]), nil
}

func (w *Wings) findFiles(ctx context.Context, base string) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			head, err := readHead(file)
			if err != nil {
				return err
			}

			kind := Classify(file, head)
			switch kind {
			case KindFont, KindShip, KindLevel:
			default:
				return nil
			}

			rel, err := filepath.Rel(base, file)
			if err != nil {
				return err
			}

			select {
			case out <- job{file: file, rel: rel, kind: kind}:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (w *Wings) convertJob(j job, outDir string, p *palette.Palette) error {
	base := filepath.Join(outDir, trimExt(j.rel))
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return err
	}

	switch j.kind {
	case KindFont:
		return w.ConvertFont(j.file, base+w.opts.Format.Ext())
	case KindShip:
		if p == nil {
			w.logger.Printf("No palette for ship \"%s\", skipping\n", j.file)
			return nil
		}
		return w.ConvertShip(j.file, base+w.opts.Format.Ext(), p)
	case KindLevel:
		return w.ConvertLevel(j.file, base)
	}
	return nil
}

func (w *Wings) fileWorker(ctx context.Context, in <-chan job, outDir string, p *palette.Palette) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			if ctx.Err() != nil {
				return
			}
			if err := w.convertJob(j, outDir, p); err != nil {
				if !w.opts.KeepGoing {
					errc <- err
					return
				}
				w.logger.Printf("Skipping \"%s\": %v\n", j.file, err)
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func (w *Wings) loadPalette(dir string) (*palette.Palette, error) {
	file := w.opts.Palette
	if file == "" {
		var err error
		if file, err = findPalette(dir); err != nil {
			return nil, err
		}
		if file == "" {
			w.logger.Println("No palette found, ships will not be converted")
			return nil, nil
		}
	}

	p, err := palette.LoadPCX(file)
	if err != nil {
		return nil, err
	}
	w.logger.Printf("Using palette from \"%s\"\n", file)
	return p, nil
}

// Convert walks the data directory in path converting every font, ship and
// level found into out, keeping the same directory structure. Output files
// are named after their input with the extension replaced.
func (w *Wings) Convert(path, out string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if strings.TrimSpace(out) == "" {
		return errors.New("no output directory")
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	p, err := w.loadPalette(dir)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := w.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < w.opts.Workers; i++ {
		errc, err := w.fileWorker(ctx, files, out, p)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
