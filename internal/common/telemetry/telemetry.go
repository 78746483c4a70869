// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/nicodishanthj/lqa-insight/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	auditTotal     *expvar.Int
	auditFailures  *expvar.Map
	auditLatencyMS *expvar.Int
	auditFiles     *expvar.Int

	filesIngested *expvar.Int
	filesSkipped  *expvar.Int

	exportTotal *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		auditTotal = expvar.NewInt("insight_audits_total")
		auditFailures = expvar.NewMap("insight_audit_failures")
		auditLatencyMS = expvar.NewInt("insight_audit_latency_ms")
		auditFiles = expvar.NewInt("insight_audit_files_total")

		filesIngested = expvar.NewInt("insight_files_ingested_total")
		filesSkipped = expvar.NewInt("insight_files_skipped_total")

		exportTotal = expvar.NewInt("insight_exports_total")
	})
}

// StartSpan logs the start of a named operation at debug level and returns a
// function that logs its end together with the elapsed time.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", time.Since(sp.start)}, attrs...)...)
	}
}

// SpanDuration reports how long the span stored in ctx has been running.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}

// RecordAudit counts one completed audit round trip. An empty failureKind
// marks a success.
func RecordAudit(files int, failureKind string, duration time.Duration) {
	ensureInit()
	auditTotal.Add(1)
	if files > 0 {
		auditFiles.Add(int64(files))
	}
	if duration > 0 {
		auditLatencyMS.Add(duration.Milliseconds())
	}
	if kind := strings.TrimSpace(strings.ToLower(failureKind)); kind != "" {
		auditFailures.Add(kind, 1)
	}
}

func RecordIngest(accepted, skipped int) {
	ensureInit()
	if accepted > 0 {
		filesIngested.Add(int64(accepted))
	}
	if skipped > 0 {
		filesSkipped.Add(int64(skipped))
	}
}

func RecordExport() {
	ensureInit()
	exportTotal.Add(1)
}

// Snapshot returns the current counter values keyed by expvar name.
func Snapshot() map[string]int64 {
	ensureInit()
	out := map[string]int64{
		"insight_audits_total":         auditTotal.Value(),
		"insight_audit_latency_ms":     auditLatencyMS.Value(),
		"insight_audit_files_total":    auditFiles.Value(),
		"insight_files_ingested_total": filesIngested.Value(),
		"insight_files_skipped_total":  filesSkipped.Value(),
		"insight_exports_total":        exportTotal.Value(),
	}
	auditFailures.Do(func(kv expvar.KeyValue) {
		if v, ok := kv.Value.(*expvar.Int); ok {
			out["insight_audit_failures."+kv.Key] = v.Value()
		}
	})
	return out
}
