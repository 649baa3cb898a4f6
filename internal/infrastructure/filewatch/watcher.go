// Package filewatch importa los archivos de despacho que llegan a los directorios
// de transferencia local.
package filewatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/rs/zerolog"
)

const (
	archiveDir = "archive"
	errorDir   = "error"
)

// Importer lo implementa shipment.Importer.
type Importer interface {
	ImportFile(ctx context.Context, name string, r io.ReadCloser) (*dto.ShipmentImportResponse, error)
}

// Watcher vigila directorios y entrega cada .csv nuevo al importador. Los archivos
// procesados se mueven a archive/ (importados) o error/ (rechazados). Ante fallas de
// infraestructura el archivo se deja donde está y se reintenta.
type Watcher struct {
	importer Importer
	dirs     []string
	debounce time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	pending map[string]time.Time
}

// New construye el watcher. debounce es la espera desde el último evento de un archivo
// antes de importarlo (el archivo puede seguir escribiéndose).
func New(importer Importer, dirs []string, debounce time.Duration, log zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Watcher{
		importer: importer,
		dirs:     uniqueDirs(dirs),
		debounce: debounce,
		log:      log,
		pending:  make(map[string]time.Time),
	}
}

// Dirs directorios vigilados.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run bloquea hasta que ctx se cancela. Los archivos presentes al arrancar también se importan.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("crear watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		for _, sub := range []string{dir, filepath.Join(dir, archiveDir), filepath.Join(dir, errorDir)} {
			if err := os.MkdirAll(sub, 0o755); err != nil {
				return fmt.Errorf("crear directorio %s: %w", sub, err)
			}
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("vigilar %s: %w", dir, err)
		}
		w.scan(dir)
		w.log.Info().Str("dir", dir).Msg("vigilando directorio de despachos")
	}

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && isShipmentFile(event.Name) {
				w.touch(event.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Error().Err(err).Msg("error del watcher")
		case now := <-ticker.C:
			for _, path := range w.ready(now) {
				w.process(ctx, path)
			}
		}
	}
}

func (w *Watcher) scan(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Error().Err(err).Str("dir", dir).Msg("no se pudo listar el directorio")
		return
	}
	for _, e := range entries {
		if !e.IsDir() && isShipmentFile(e.Name()) {
			w.touch(filepath.Join(dir, e.Name()))
		}
	}
}

func (w *Watcher) touch(path string) {
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// ready saca de pendientes los archivos sin eventos durante debounce.
func (w *Watcher) ready(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			out = append(out, path)
			delete(w.pending, path)
		}
	}
	return out
}

func (w *Watcher) process(ctx context.Context, path string) {
	log := w.log.With().Str("file", path).Logger()
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Msg("no se pudo abrir el archivo")
		}
		return
	}
	resp, err := w.importer.ImportFile(ctx, filepath.Base(path), f)
	target := archiveDir
	switch {
	case err == nil:
		log.Info().Str("shipment_id", resp.ShipmentID).Msg("archivo importado")
	case rejected(err):
		target = errorDir
	default:
		// falla transitoria: el archivo queda en su lugar y se reintenta tras debounce
		log.Warn().Err(err).Msg("importación fallida, se reintentará")
		w.touch(path)
		return
	}
	dest := filepath.Join(filepath.Dir(path), target, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		log.Error().Err(err).Str("dest", dest).Msg("no se pudo mover el archivo procesado")
	}
}

// rejected indica si el contenido del archivo o su orden no permiten importarlo nunca.
func rejected(err error) bool {
	return domain.IsFileError(err) || errors.Is(err, domain.ErrNodeNotFound)
}

func isShipmentFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

func uniqueDirs(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d == "" {
			continue
		}
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
