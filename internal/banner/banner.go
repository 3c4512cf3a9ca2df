// Package banner renders the CLI startup banner.
package banner

import "fmt"

const art = `                        _       _ _
__      _____  _ __ __| | __ _| (_) __ _ _ __
\ \ /\ / / _ \| '__/ _' |/ _' | | |/ _' | '_ \
 \ V  V / (_) | | | (_| | (_| | | | (_| | | | |
  \_/\_/ \___/|_|  \__,_|\__,_|_|_|\__, |_| |_|
                                   |___/
`

// Banner returns the banner text followed by the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  IBM Model 1 word aligner %s\n\n", art, version)
}
