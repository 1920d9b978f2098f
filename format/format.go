// Package format renders lint reports for output. Encoders share one
// interface so the CLI can switch formats with a flag.
package format

import (
	"encoding"

	"github.com/glintjs/glint/runner"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(reports []runner.FileReport) error
}
