package export

import (
	"encoding/json"

	"github.com/docsift/docsift/pkg/content"
)

// renderJSON is a direct, order-preserving projection of the result. The
// pretty toggle only affects whitespace, never content. Timestamps render
// as RFC 3339 via encoding/json's time.Time handling.
func renderJSON(result *content.Result, opts Options) ([]byte, error) {
	var data []byte
	var err error
	if opts.PrettyPrint {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return nil, &Error{Path: opts.DestinationPath, Reason: "marshal result", Err: err}
	}
	return append(data, '\n'), nil
}
