// SPDX-License-Identifier: MIT

// Command lvmixt clusters mixed-type data with a mixture model.
//
//	lvmixt learn request.json -o model.json
//	lvmixt predict request.json --param model.json -o classes.json
//
// Requests and outputs ending in .gz or .zst are (de)compressed on the
// fly. Settings are read from lvmixt.yaml (current directory or
// $HOME/.config/lvmixt), LVMIXT_* environment variables and flags, in
// increasing order of precedence.
package main

func main() {
	Execute()
}
