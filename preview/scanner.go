// Package preview scans ship directories in the background and produces
// thumbnail previews. Commands go through a single-slot mailbox where the
// latest directive wins; results accumulate in a FIFO queue the caller
// drains with Poll. The only way to stop the scanner is an explicit Exit.
package preview

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"github.com/corvel/shipfall/shipdef"
)

const thumbnailSide = 64

// Result is one scanned ship, or a per-ship failure. A failed ship carries
// Err and does not stop the scan.
type Result struct {
	Path      string
	ShipName  string
	Author    string
	Width     int
	Height    int
	Thumbnail *image.RGBA
	Err       error
}

type command struct {
	exit      bool
	directory string
}

// Scanner runs one background goroutine. SetDirectory may be called at any
// rate; a scan in progress finishes the ship it is on and then picks up the
// newest directive.
type Scanner struct {
	commands chan command
	done     chan struct{}
	log      zerolog.Logger

	mu      sync.Mutex
	results []Result
}

// NewScanner starts the scanner goroutine, idle until the first directive.
func NewScanner(log zerolog.Logger) *Scanner {
	s := &Scanner{
		commands: make(chan command, 1),
		done:     make(chan struct{}),
		log:      log,
	}
	go s.run()
	return s
}

// SetDirectory directs the scanner at a directory, replacing any directive
// it has not picked up yet.
func (s *Scanner) SetDirectory(dir string) {
	s.post(command{directory: dir})
}

// Exit stops the scanner and waits for its goroutine to finish.
func (s *Scanner) Exit() {
	s.post(command{exit: true})
	<-s.done
}

// Poll drains the accumulated results, oldest first. Never blocks.
func (s *Scanner) Poll() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := s.results
	s.results = nil
	return results
}

// post delivers into the single-slot mailbox, overwriting a directive the
// scanner has not consumed yet.
func (s *Scanner) post(c command) {
	for {
		select {
		case s.commands <- c:
			return
		default:
		}
		select {
		case <-s.commands:
		default:
		}
	}
}

func (s *Scanner) push(r Result) {
	s.mu.Lock()
	s.results = append(s.results, r)
	s.mu.Unlock()
}

func (s *Scanner) run() {
	var pending *command
	for {
		var cmd command
		if pending != nil {
			cmd, pending = *pending, nil
		} else {
			cmd = <-s.commands
		}

		if cmd.exit {
			close(s.done)
			return
		}

		s.log.Debug().Str("directory", cmd.directory).Msg("scanning ship directory")
		pending = s.scan(cmd.directory)
	}
}

// scan walks one directory. Returns the directive that interrupted it, if
// any; the interrupt is only checked between ships.
func (s *Scanner) scan(dir string) *command {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.push(Result{Path: dir, Err: fmt.Errorf("reading ship directory: %w", err)})
		return nil
	}

	for _, entry := range entries {
		select {
		case cmd := <-s.commands:
			return &cmd
		default:
		}

		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		s.push(s.previewShip(filepath.Join(dir, entry.Name())))
	}
	return nil
}

func (s *Scanner) previewShip(path string) Result {
	result := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("reading ship definition: %w", err)
		return result
	}

	var files struct {
		StructuralLayerImage string `json:"structuralLayerImage"`
		shipdef.Metadata
	}
	if err := json.Unmarshal(data, &files); err != nil {
		result.Err = fmt.Errorf("parsing ship definition: %w", err)
		return result
	}
	if files.StructuralLayerImage == "" {
		result.Err = fmt.Errorf("ship definition has no structural layer image")
		return result
	}

	result.ShipName = files.ShipName
	if result.ShipName == "" {
		result.ShipName = filepath.Base(path)
	}
	result.Author = files.Author

	img, err := loadImage(filepath.Join(filepath.Dir(path), files.StructuralLayerImage))
	if err != nil {
		result.Err = err
		return result
	}

	bounds := img.Bounds()
	result.Width = bounds.Dx()
	result.Height = bounds.Dy()
	result.Thumbnail = thumbnail(img)
	return result
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structural layer %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding structural layer %s: %w", path, err)
	}
	return img, nil
}

// thumbnail scales the structural layer to fit the preview box, preserving
// aspect ratio. Nearest neighbour keeps the material cells crisp.
func thumbnail(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	longest := w
	if h > longest {
		longest = h
	}
	tw, th := w, h
	if longest > thumbnailSide {
		tw = w * thumbnailSide / longest
		th = h * thumbnailSide / longest
		if tw < 1 {
			tw = 1
		}
		if th < 1 {
			th = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}
