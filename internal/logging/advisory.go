package logging

import (
	"io"
	"sync"

	"github.com/Aman-CERP/logexec/internal/output"
)

// AdvisoryCategory names the advisory channel in rendered output.
const AdvisoryCategory = "LogSettingWarning"

// AdvisoryKind identifies a recovered condition.
type AdvisoryKind int

const (
	// AdvisoryDirectoryCreated: the log directory was missing and was created.
	AdvisoryDirectoryCreated AdvisoryKind = iota + 1
	// AdvisoryFileExisted: the requested log file existed and another path was used.
	AdvisoryFileExisted
	// AdvisoryNoLogger: a traced call carried no logger and the root logger was used.
	AdvisoryNoLogger
)

func (k AdvisoryKind) String() string {
	switch k {
	case AdvisoryDirectoryCreated:
		return "directory-created"
	case AdvisoryFileExisted:
		return "file-existed"
	case AdvisoryNoLogger:
		return "no-logger"
	default:
		return "unknown"
	}
}

// Advisory is a non-fatal diagnostic. Path is the directory or file the
// advisory is about; Substitute is the path used instead, when there is one.
type Advisory struct {
	Kind       AdvisoryKind
	Message    string
	Path       string
	Substitute string
}

func (a Advisory) String() string {
	return AdvisoryCategory + ": " + a.Message
}

// AdvisoryHandler receives advisories. It is called synchronously.
type AdvisoryHandler func(Advisory)

// WriterAdvisories renders each advisory as a warning line on w.
func WriterAdvisories(w io.Writer) AdvisoryHandler {
	out := output.New(w)
	return func(a Advisory) {
		out.Warning(a.String())
	}
}

// DiscardAdvisories drops advisories.
func DiscardAdvisories(Advisory) {}

// AdvisoryRecorder collects advisories, mostly for tests.
type AdvisoryRecorder struct {
	mu    sync.Mutex
	items []Advisory
}

// Handle implements AdvisoryHandler; pass recorder.Handle where one is expected.
func (r *AdvisoryRecorder) Handle(a Advisory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
}

// All returns a copy of the recorded advisories.
func (r *AdvisoryRecorder) All() []Advisory {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Advisory, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns how many advisories of kind were recorded.
func (r *AdvisoryRecorder) Count(kind AdvisoryKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.items {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
