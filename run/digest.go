// SPDX-License-Identifier: MIT

package run

import (
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/lvmixt/jsonio"
)

// Digest fingerprints the variables of a request: ids, models, parameter
// descriptors and every raw token, in order.
func Digest(vars []jsonio.Variable) string {
	d := xxhash.New()
	for _, v := range vars {
		_, _ = d.WriteString(v.ID)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(v.Model)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(v.ParamStr)
		_, _ = d.WriteString("\x00")
		for _, tok := range v.Data {
			_, _ = d.WriteString(tok)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
