package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/tools/cover"

	m "covagg.dev/pkg/covagg/internal/model"
)

var (
	// ErrBranchCoverageUnsupported is returned when branch coverage is
	// requested from a driver that cannot observe branches.
	ErrBranchCoverageUnsupported = errors.New("branch coverage is not supported by go cover profiles")
	// ErrDriverState is returned for Start/Stop calls out of order.
	ErrDriverState = errors.New("driver bracket out of order")
)

// Driver observes code execution between Start and Stop.
type Driver interface {
	// Start opens an observation window. When determineDeadAndUnused is true
	// the driver also reports lines that can never execute.
	Start(determineDeadAndUnused bool) error

	// Stop closes the observation window and returns what was observed.
	Stop() (m.RawData, error)

	// SetDetermineBranchCoverage toggles branch and path observation.
	SetDetermineBranchCoverage(enabled bool) error
}

// FileLoader is implemented by drivers that can observe a set of files
// without running any test, for the uncovered files baseline.
type FileLoader interface {
	Load(files []m.Path) error
}

// QueueDriver is a Driver whose observations are scheduled ahead of Stop.
type QueueDriver interface {
	Driver
	Queue(profile m.Path)
}

// ProfileDriver is a Driver fed by Go cover profiles. Each Stop consumes the
// oldest queued profile.
type ProfileDriver struct {
	fs            SourceFSAdapter
	resolver      *ModuleResolver
	baseline      m.Path
	queue         []m.Path
	loaded        m.RawData
	started       bool
	deadAndUnused bool
}

// ProfileDriverOption configures a ProfileDriver.
type ProfileDriverOption func(*ProfileDriver)

// WithModuleResolver maps import-path profile names to disk paths.
func WithModuleResolver(resolver *ModuleResolver) ProfileDriverOption {
	return func(d *ProfileDriver) {
		d.resolver = resolver
	}
}

// WithBaselineProfile sets the profile used by Load, usually produced by
// running the whole suite with -coverpkg=./... once.
func WithBaselineProfile(profile m.Path) ProfileDriverOption {
	return func(d *ProfileDriver) {
		d.baseline = profile
	}
}

// NewProfileDriver constructs a ProfileDriver.
func NewProfileDriver(fs SourceFSAdapter, opts ...ProfileDriverOption) *ProfileDriver {
	d := &ProfileDriver{fs: fs}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Queue schedules a profile for the next Stop.
func (d *ProfileDriver) Queue(profile m.Path) {
	d.queue = append(d.queue, profile)
}

// Pending returns the number of queued profiles.
func (d *ProfileDriver) Pending() int {
	return len(d.queue)
}

// SetDetermineBranchCoverage implements Driver.
func (d *ProfileDriver) SetDetermineBranchCoverage(enabled bool) error {
	if enabled {
		return ErrBranchCoverageUnsupported
	}

	return nil
}

// Start implements Driver.
func (d *ProfileDriver) Start(determineDeadAndUnused bool) error {
	if d.started {
		return fmt.Errorf("start: %w", ErrDriverState)
	}

	d.started = true
	d.deadAndUnused = determineDeadAndUnused

	return nil
}

// Load implements FileLoader. Blocks of the baseline profile that belong to
// files are reported by the next Stop.
func (d *ProfileDriver) Load(files []m.Path) error {
	if d.baseline == "" {
		slog.Debug("no baseline profile configured, skipping load", "files", len(files))
		return nil
	}

	wanted := make(map[m.Path]bool, len(files))
	for _, f := range files {
		wanted[f] = true
	}

	raw, err := d.read(d.baseline, false)
	if err != nil {
		return err
	}

	if d.loaded == nil {
		d.loaded = m.RawData{}
	}

	for path, file := range raw {
		if wanted[path] {
			d.loaded[path] = file
		}
	}

	return nil
}

// Stop implements Driver.
func (d *ProfileDriver) Stop() (m.RawData, error) {
	if !d.started {
		return nil, fmt.Errorf("stop: %w", ErrDriverState)
	}

	d.started = false

	data := d.loaded
	d.loaded = nil

	if data == nil {
		data = m.RawData{}
	}

	if len(d.queue) == 0 {
		return data, nil
	}

	profile := d.queue[0]
	d.queue = d.queue[1:]

	raw, err := d.read(profile, d.deadAndUnused)
	if err != nil {
		return nil, err
	}

	for path, file := range raw {
		if existing, ok := data[path]; ok {
			mergeRawLines(existing, file)
			continue
		}

		data[path] = file
	}

	return data, nil
}

func (d *ProfileDriver) read(profile m.Path, deadAndUnused bool) (m.RawData, error) {
	content, err := d.fs.ReadFile(profile)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", profile, err)
	}

	profiles, err := cover.ParseProfilesFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", profile, err)
	}

	data := m.RawData{}

	for _, p := range profiles {
		path := m.Path(p.FileName)
		if d.resolver != nil {
			path = d.resolver.Resolve(p.FileName)
		}

		file, ok := data[path]
		if !ok {
			file = m.NewRawFile()
			data[path] = file
		}

		first, last := 0, 0

		for _, block := range p.Blocks {
			status := m.LineNotExecuted
			if block.Count > 0 {
				status = m.LineExecuted
			}

			for line := block.StartLine; line <= block.EndLine; line++ {
				if file.Lines[line] != m.LineExecuted {
					file.Lines[line] = status
				}
			}

			if first == 0 || block.StartLine < first {
				first = block.StartLine
			}

			last = max(last, block.EndLine)
		}

		if deadAndUnused {
			for line := first; line > 0 && line <= last; line++ {
				if _, ok := file.Lines[line]; !ok {
					file.Lines[line] = m.LineNotExecutable
				}
			}
		}
	}

	slog.Debug("parsed cover profile", "profile", profile, "files", len(data))

	return data, nil
}

// mergeRawLines folds src into dst with executed taking precedence.
func mergeRawLines(dst, src *m.RawFile) {
	for line, status := range src.Lines {
		current, ok := dst.Lines[line]
		if !ok || status == m.LineExecuted || current == m.LineNotExecutable {
			dst.Lines[line] = status
		}
	}
}
