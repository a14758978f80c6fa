package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"
)

// Decoder reads a directory of file-based catalog files and emits the
// objects they contain. Catalog exports in the wild are not guaranteed
// to be one object per file or even valid JSON streams, so JSON files
// fall through three strategies: whole-file parse, concatenated-stream
// scan, then line splitting. Files no strategy can decode are skipped,
// never fatal.
type Decoder struct {
	fs afero.Fs
}

// NewDecoder returns a Decoder reading through fs. A nil fs defaults
// to the operating system filesystem.
func NewDecoder(fs afero.Fs) Decoder {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return Decoder{fs: fs}
}

// LoadResult carries the decoded object sequence along with the files
// and spans the decoder had to skip.
type LoadResult struct {
	Objects []Meta
	// Skipped lists per-file skip diagnostics: unparsable files and
	// unrecoverable spans inside otherwise readable files.
	Skipped []string
}

// Load walks dir and decodes every catalog file found. Files are
// parsed concurrently; each file's result is independent and the
// output order follows the directory walk, so the final sequence is
// deterministic.
func (d Decoder) Load(dir string) (LoadResult, error) {
	var paths []string
	err := afero.Walk(d.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return LoadResult{}, fmt.Errorf("walk catalog dir %q: %w", dir, err)
	}

	type fileResult struct {
		objects []Meta
		skipped []string
	}
	results := make([]fileResult, len(paths))

	g := new(errgroup.Group)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			objs, skips, err := d.decodeFile(path)
			if err != nil {
				logrus.Warnf("skipping unparsable catalog file %q: %v", path, err)
				results[i] = fileResult{skipped: []string{path}}
				return nil
			}
			res := fileResult{objects: objs}
			for n := 0; n < skips; n++ {
				res.skipped = append(res.skipped, path)
			}
			results[i] = res
			return nil
		})
	}
	// Decode errors are absorbed per file, so the group never fails.
	_ = g.Wait()

	var out LoadResult
	for _, r := range results {
		out.Objects = append(out.Objects, r.objects...)
		out.Skipped = append(out.Skipped, r.skipped...)
	}
	return out, nil
}

// decodeFile parses one catalog file into raw objects. skips counts
// stream spans that had to be discarded while salvaging the rest of
// the file.
func (d Decoder) decodeFile(path string) (objs []Meta, skips int, err error) {
	data, err := afero.ReadFile(d.fs, path)
	if err != nil {
		return nil, 0, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		jsonData, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, 0, fmt.Errorf("parse yaml: %w", err)
		}
		return flatten(jsonData), 0, nil
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (objs []Meta, skips int, err error) {
	// Strategy 1: the whole file is a single JSON value.
	var whole json.RawMessage
	if jerr := json.Unmarshal(data, &whole); jerr == nil {
		return flatten(whole), 0, nil
	}

	// Strategy 2: a concatenated stream of JSON objects.
	values, skips := splitStream(data)
	if len(values) > 0 {
		for _, v := range values {
			objs = append(objs, flatten(v)...)
		}
		return objs, skips, nil
	}

	// Strategy 3: one object per line, discarding unparsable lines.
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var v json.RawMessage
		if jerr := json.Unmarshal([]byte(line), &v); jerr != nil {
			skips++
			continue
		}
		objs = append(objs, flatten(v)...)
	}
	if len(objs) == 0 {
		return nil, 0, fmt.Errorf("no decodable json content")
	}
	return objs, skips, nil
}

// flatten expands a top-level array one level; any other value becomes
// a single object.
func flatten(blob json.RawMessage) []Meta {
	trimmed := strings.TrimSpace(string(blob))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(blob, &items); err == nil {
			metas := make([]Meta, 0, len(items))
			for _, item := range items {
				metas = append(metas, newMeta(item))
			}
			return metas
		}
	}
	return []Meta{newMeta(blob)}
}

// SplitByPackage groups a decoded object sequence by owning package so
// a graph can be built per operator. Package objects key by their own
// name; channels and bundles key by their package field. Objects that
// reference no package are dropped.
func SplitByPackage(objs []Meta) map[string][]Meta {
	byPkg := make(map[string][]Meta)
	for _, o := range objs {
		key := o.Package
		if o.Schema == SchemaPackage {
			key = o.Name
		}
		if key == "" {
			continue
		}
		byPkg[key] = append(byPkg[key], o)
	}
	return byPkg
}
