package model

// UncoveredFilesTestID is the reserved pseudo test id used for the
// baseline contribution of files that no test touched.
const UncoveredFilesTestID = "UNCOVERED_FILES_FROM_WHITELIST"

// UnknownStatus is recorded when the runner did not report a status.
const UnknownStatus = -1

// TestSize classifies a test by its scope.
type TestSize string

// Available TestSize values.
const (
	SizeSmall   TestSize = "small"
	SizeMedium  TestSize = "medium"
	SizeLarge   TestSize = "large"
	SizeUnknown TestSize = "unknown"
)

// TestRecord describes a test that contributed coverage.
type TestRecord struct {
	ID     string   `msgpack:"id" yaml:"id"`
	Size   TestSize `msgpack:"size" yaml:"size"`
	Status int      `msgpack:"status" yaml:"status"`
}

// NewTestRecord returns a record of unknown size and status.
func NewTestRecord(id string) TestRecord {
	return TestRecord{ID: id, Size: SizeUnknown, Status: UnknownStatus}
}

// IsSmallOrUnknown reports whether the test is neither medium nor large.
func (t TestRecord) IsSmallOrUnknown() bool {
	return t.Size != SizeMedium && t.Size != SizeLarge
}

// TestData maps test ids to their records.
type TestData map[string]TestRecord
