// Package trace provides optional, low-overhead debug logging for the
// scanner/tokenizer/query-parser pipeline, backed by klog so it composes
// with a host program's existing klog flags and verbosity gating.
package trace

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Enabled reports whether V(4) tracing is active, letting a hot call site
// skip building a trace message entirely when nobody is listening.
func Enabled() bool { return klog.V(4).Enabled() }

// Parse logs one parser-level trace event: which component, at what byte
// offset, doing what.
func Parse(component string, pos int, format string, args ...interface{}) {
	klog.V(4).InfoS("parse", "component", component, "pos", pos, "msg", fmt.Sprintf(format, args...))
}

// Error logs a parse failure before it is returned to the caller, so a
// host program running with increased verbosity can see the rejected
// input even if it only surfaces the final error to its own user.
func Error(component string, pos int, err error) {
	klog.V(2).ErrorS(err, "parse failed", "component", component, "pos", pos)
}
