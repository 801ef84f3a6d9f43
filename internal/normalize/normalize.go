// internal/normalize/normalize.go
//
// Package normalize maps heterogeneous worker JSON into the stable record
// types the presentation layer consumes. The worker scripts evolve their
// field names independently; the alias tables here are the single place
// that absorbs that drift. Alias resolution is first-match-wins: the modern
// key is listed before its legacy synonyms and always takes precedence.
//
// Normalization is best-effort per record: a record missing a required
// field is dropped from the batch, never failing the batch as a whole, and
// every optional field degrades to a type-appropriate default.
package normalize

// stringField resolves a string field through its alias list.
func stringField(m map[string]interface{}, keys ...string) (string, bool) {
    for _, k := range keys {
        if s, ok := m[k].(string); ok {
            return s, true
        }
    }
    return "", false
}

func stringOr(m map[string]interface{}, def string, keys ...string) string {
    if s, ok := stringField(m, keys...); ok {
        return s
    }
    return def
}

func boolOr(m map[string]interface{}, def bool, keys ...string) bool {
    for _, k := range keys {
        if b, ok := m[k].(bool); ok {
            return b
        }
    }
    return def
}

// intOr resolves a numeric field. Decoded JSON numbers arrive as float64.
func intOr(m map[string]interface{}, def int64, keys ...string) int64 {
    for _, k := range keys {
        if n, ok := m[k].(float64); ok {
            return int64(n)
        }
    }
    return def
}

// objects extracts an array-of-objects payload field.
func objects(m map[string]interface{}, key string) []map[string]interface{} {
    raw, ok := m[key].([]interface{})
    if !ok {
        return nil
    }
    out := make([]map[string]interface{}, 0, len(raw))
    for _, item := range raw {
        if obj, ok := item.(map[string]interface{}); ok {
            out = append(out, obj)
        }
    }
    return out
}
