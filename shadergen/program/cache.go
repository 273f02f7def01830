package program

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// SourceCache persists generated source text keyed by content fingerprint.
// The manager stores every pair it compiles; hosts can point tooling at the
// cache directory to inspect what the generator actually emitted.
type SourceCache interface {
	// Store persists one generated pair. Implementations may write
	// asynchronously; Store must not block program acquisition.
	//
	// Parameters:
	//   - hash: the pair's content fingerprint
	//   - language: the target language tag
	//   - vertexSource: the vertex stage source, possibly empty
	//   - pixelSource: the pixel stage source, possibly empty
	Store(hash uint64, language, vertexSource, pixelSource string)

	// Load retrieves a previously stored pair.
	//
	// Parameters:
	//   - hash: the pair's content fingerprint
	//   - language: the target language tag
	//
	// Returns:
	//   - string: the vertex source
	//   - string: the pixel source
	//   - bool: true when the pair was found
	Load(hash uint64, language string) (string, string, bool)

	// Clear removes every cached pair.
	Clear()
}

// diskCache is the implementation of the SourceCache interface backed by a
// directory of source files. Writes go through a dynamic worker pool so the
// render thread never waits on the filesystem.
type diskCache struct {
	dir    string
	pool   worker.DynamicWorkerPool
	taskID atomic.Int64
}

var _ SourceCache = &diskCache{}

// NewDiskCache creates a source cache rooted at dir, creating the directory
// when missing.
//
// Parameters:
//   - dir: the cache directory
//   - workers: the maximum number of concurrent writer goroutines
//
// Returns:
//   - SourceCache: the new cache
//   - error: when the directory cannot be created
func NewDiskCache(dir string, workers int) (SourceCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("program: create cache dir: %w", err)
	}
	return &diskCache{
		dir:  dir,
		pool: worker.NewDynamicWorkerPool(max(workers, 1), 64, 1*time.Second),
	}, nil
}

func (c *diskCache) Store(hash uint64, language, vertexSource, pixelSource string) {
	c.pool.SubmitTask(worker.Task{
		ID: int(c.taskID.Add(1)),
		Do: func() (any, error) {
			for _, stage := range []struct {
				suffix string
				source string
			}{{"vs", vertexSource}, {"ps", pixelSource}} {
				if stage.source == "" {
					continue
				}
				path := c.path(hash, language, stage.suffix)
				if err := os.WriteFile(path, []byte(stage.source), 0o644); err != nil {
					log.Printf("shadergen: cache write %s: %v", path, err)
				}
			}
			return nil, nil
		},
	})
}

func (c *diskCache) Load(hash uint64, language string) (string, string, bool) {
	vertex, vErr := os.ReadFile(c.path(hash, language, "vs"))
	pixel, pErr := os.ReadFile(c.path(hash, language, "ps"))
	if vErr != nil && pErr != nil {
		return "", "", false
	}
	return string(vertex), string(pixel), true
}

func (c *diskCache) Clear() {
	matches, err := filepath.Glob(filepath.Join(c.dir, "sg_*"))
	if err != nil {
		return
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			log.Printf("shadergen: cache remove %s: %v", path, err)
		}
	}
}

// path builds the cache file path for one stage of a pair.
func (c *diskCache) path(hash uint64, language, suffix string) string {
	return filepath.Join(c.dir, fmt.Sprintf("sg_%016x_%s.%s", hash, suffix, sourceExtension(language)))
}

// sourceExtension maps a language tag to the cache file extension.
func sourceExtension(language string) string {
	switch language {
	case "hlsl":
		return "hlsl"
	case "wgsl":
		return "wgsl"
	case "glsl", "glsles", "glslang":
		return "glsl"
	default:
		return "txt"
	}
}
