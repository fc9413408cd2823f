package logging

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/waypoint/internal/ports"
)

// appendFields returns a fresh slice so derived loggers never share backing arrays.
func appendFields(base, extra []ports.Field) []ports.Field {
	out := make([]ports.Field, len(base)+len(extra))
	copy(out, base)
	copy(out[len(base):], extra)
	return out
}

func writeFields(b *strings.Builder, fields []ports.Field) {
	for _, f := range fields {
		fmt.Fprintf(b, " %s=%v", f.Key, f.Value)
	}
}
