package models

// AppendLog adds e to the activity log and evicts the oldest entries so
// that at most limit remain. A limit below one falls back to DefaultLogCap.
func (d *Document) AppendLog(e LogEntry, limit int) {
	d.Logs = append(d.Logs, e)
	d.TrimLogs(limit)
}

func (d *Document) TrimLogs(limit int) {
	if limit < 1 {
		limit = DefaultLogCap
	}
	if over := len(d.Logs) - limit; over > 0 {
		d.Logs = append([]LogEntry(nil), d.Logs[over:]...)
	}
}

// RecentLogs returns up to n entries, newest first.
func (d *Document) RecentLogs(n int) []LogEntry {
	if n > len(d.Logs) || n < 0 {
		n = len(d.Logs)
	}
	out := make([]LogEntry, 0, n)
	for i := len(d.Logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, d.Logs[i])
	}
	return out
}
