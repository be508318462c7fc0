package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"regexp"
	"strings"

	"go.trai.ch/saga/internal/core/domain"
	"go.trai.ch/zerr"
)

// extensionPattern extracts extension tokens out of the probe's format table.
var extensionPattern = regexp.MustCompile(`\.(\w+)`)

// sagaNativeRasterExts are raster extensions the GDAL listing does not
// include but saga_cmd writes natively.
var sagaNativeRasterExts = []string{"sdat", "sgrd", "sg-grd-z"}

const (
	formatTypeRaster = "0"
	formatTypeVector = "1"
)

// Version probes the external tool version once and caches the result for
// the lifetime of the program. An unparsable version is cached as unknown
// and reported as a soft failure.
func (p *Program) Version(ctx context.Context) (domain.Version, error) {
	p.mu.Lock()
	if p.versionProbed {
		v := p.version
		p.mu.Unlock()
		if v.IsZero() {
			return v, domain.ErrVersionUnknown
		}
		return v, nil
	}
	p.mu.Unlock()

	cmd := domain.NewCommand(p.path.String(), "--version")
	capture, err := p.executor.Run(ctx, cmd, nil)
	if err != nil {
		return domain.Version{}, zerr.Wrap(err, "version probe failed")
	}

	v, parseErr := domain.ParseVersion(capture.Stdout)

	// First completed probe wins; a concurrent warm-up may have raced us.
	p.mu.Lock()
	if !p.versionProbed {
		p.version = v
		p.versionProbed = true
	}
	v = p.version
	p.mu.Unlock()

	if parseErr != nil && v.IsZero() {
		p.logger.Warn("could not parse saga_cmd version, format inference disabled")
		return v, parseErr
	}
	return v, nil
}

// RasterFormats returns the raster extension set reported by the external
// tool, probing it on first use. The GDAL listing is augmented with the
// SAGA-native grid extensions it omits.
func (p *Program) RasterFormats(ctx context.Context) (domain.FormatSet, error) {
	p.mu.Lock()
	if p.rasterFormats != nil {
		set := p.rasterFormats
		p.mu.Unlock()
		return set, nil
	}
	p.mu.Unlock()

	set, err := p.probeFormats(ctx, formatTypeRaster)
	if err != nil {
		if errors.Is(err, domain.ErrFormatProbeUnsupported) {
			// Leave the set empty so files degrade to generic, but remember
			// the answer: the tool will not get younger mid-process.
			p.storeFormats(&p.rasterFormats, domain.NewFormatSet())
		}
		return nil, err
	}
	for _, ext := range sagaNativeRasterExts {
		set.Add(ext)
	}
	p.storeFormats(&p.rasterFormats, set)
	p.mu.Lock()
	set = p.rasterFormats
	p.mu.Unlock()
	return set, nil
}

// VectorFormats returns the vector extension set, probing it on first use.
func (p *Program) VectorFormats(ctx context.Context) (domain.FormatSet, error) {
	p.mu.Lock()
	if p.vectorFormats != nil {
		set := p.vectorFormats
		p.mu.Unlock()
		return set, nil
	}
	p.mu.Unlock()

	set, err := p.probeFormats(ctx, formatTypeVector)
	if err != nil {
		if errors.Is(err, domain.ErrFormatProbeUnsupported) {
			p.storeFormats(&p.vectorFormats, domain.NewFormatSet())
		}
		return nil, err
	}
	p.storeFormats(&p.vectorFormats, set)
	p.mu.Lock()
	set = p.vectorFormats
	p.mu.Unlock()
	return set, nil
}

// storeFormats caches a probed set unless a concurrent probe won the race.
func (p *Program) storeFormats(slot *domain.FormatSet, set domain.FormatSet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if *slot == nil {
		*slot = set
	}
}

// probeFormats asks the well-known "GDAL Formats" tool (io_gdal / 10) to
// write its format table to a scratch file and parses the extension tokens
// out of the last row's third column. Requires saga_cmd >= 4.0.0.
func (p *Program) probeFormats(ctx context.Context, typeCode string) (domain.FormatSet, error) {
	v, err := p.Version(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrVersionUnknown) {
			return nil, zerr.Wrap(domain.ErrFormatProbeUnsupported, "version unknown")
		}
		return nil, err
	}
	if !v.AtLeast(4, 0, 0) {
		return nil, zerr.With(domain.ErrFormatProbeUnsupported, "version", v.String())
	}

	scratch, err := os.CreateTemp("", "saga_formats_*.txt")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create format listing file")
	}
	path := scratch.Name()
	_ = scratch.Close()
	defer func() { _ = os.Remove(path) }()

	tool := p.Tool("io_gdal", "10")
	if _, err := tool.Configure(
		domain.Param{Name: "formats", Value: path},
		domain.Param{Name: "type", Value: typeCode},
		domain.Param{Name: "access", Value: 2},
		domain.Param{Name: "recognized", Value: 1},
	); err != nil {
		return nil, err
	}

	capture, err := p.executor.Run(ctx, tool.Command(), nil)
	if err != nil {
		return nil, zerr.Wrap(err, "format probe failed")
	}
	if stderr := strings.TrimSpace(capture.Stderr); stderr != "" {
		return nil, &domain.ExecutionError{Target: tool.Identity(), Stderr: stderr}
	}

	return parseFormatListing(path)
}

// parseFormatListing reads the tab-delimited table the probe wrote and
// collects ".ext" tokens from the last row's third column.
func parseFormatListing(path string) (domain.FormatSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read format listing")
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse format listing")
	}
	if len(rows) == 0 {
		return nil, zerr.With(domain.ErrFormatProbeFailed, "reason", "empty listing")
	}
	last := rows[len(rows)-1]
	if len(last) < 3 {
		return nil, zerr.With(zerr.With(domain.ErrFormatProbeFailed, "reason", "short row"), "columns", len(last))
	}

	set := domain.NewFormatSet()
	for _, m := range extensionPattern.FindAllStringSubmatch(last[2], -1) {
		set.Add(m[1])
	}
	return set, nil
}
