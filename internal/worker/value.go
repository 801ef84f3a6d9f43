// internal/worker/value.go
package worker

// String returns the first present key whose value is a string; used when
// reading optional payload fields from raw results.
func (r Result) String(keys ...string) (string, bool) {
    for _, k := range keys {
        if s, ok := r[k].(string); ok {
            return s, true
        }
    }
    return "", false
}
