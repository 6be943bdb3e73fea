package log

import "sort"

const (
	// FieldKeyMsg is the reserved field key for the log message.
	FieldKeyMsg = "msg"
	// FieldKeyLevel is the reserved field key for the log level.
	FieldKeyLevel = "level"
	// FieldKeyTime is the reserved field key for the log timestamp.
	FieldKeyTime = "time"
)

var logKeys = []string{
	FieldKeyMsg,
	FieldKeyLevel,
	FieldKeyTime,
}

// Fields type, used to pass to `WithFields`.
type Fields map[string]any

// Keys returns the sorted field keys, excluding the given ones.
func (fields Fields) Keys(removeKeys ...string) []string {
	var keys []string

	for key := range fields {
		var skip bool

		for _, removeKey := range removeKeys {
			if key == removeKey {
				skip = true
				break
			}
		}

		if !skip {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

// fixKeyClashes renames user fields that would otherwise silently overwrite the
// reserved `time`, `msg` and `level` fields. Doing:
//
//	log.WithField("level", 1).Info("hello")
//
// gets logged as:
//
//	{"level": "info", "fields.level": 1, "msg": "hello", "time": "..."}
func (fields Fields) fixKeyClashes() {
	for _, key := range logKeys {
		if val, ok := fields[key]; ok {
			fields["fields."+key] = val
			delete(fields, key)
		}
	}
}
