// Package utils contains utility functions for the Tokenboard daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the Tokenboard ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░
 ░█▀▄░█▀█░█▀█░█▀▄░█▀▄░
 ░█▀▄░█░█░█▀█░█▀▄░█░█░
 ░▀▀░░▀▀▀░▀░▀░▀░▀░▀▀░░
 ░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n Tokenboard v%s - Token Dashboard Dev Backend\n", version)
	fmt.Println(" Seeded tokens, community votes, one signature per batch")
	fmt.Println()
}

// ░█▀█░█▀▄░█▀▀░█▀▄░█▀▀░█▀▀░█▀▀░█░█░▀█▀░░░█░░
// ░█▀█░█▀▄░█░░░█░█░█▀▀░█▀▀░█░█░█▀█░░█░░░░█░░
// ░▀░▀░▀▀░░▀▀▀░▀▀░░▀▀▀░▀░░░▀▀▀░▀░▀░▀▀▀░▀▀░░░
// ░█░█░█░░░█▄█▄█░█▀█░█▀█░█▀█░█▀█░█▀▄░█▀▀░▀█▀░░
// ░█▀▄░█░░░█░█░█░█░█░█░█░█▀▀░█░█░█▀▄░▀▀█░░█░░░
// ░▀░▀░▀▀▀░▀░▀░▀░▀░▀░▀▀▀░▀░░░▀▀█░▀░▀░▀▀▀░░▀░░░
// ░█░█░█░█░█░█░█░█░█░█░▀▀█░░░░░░░░░░░░░░░░░░
// ░█░█░█░█░█▄█░▄▀▄░▀▄▀░▄▀▀░░░░░░░░░░░░░░░░░░
// ░▀▀▀░░▀░░▀░▀░▀░▀░░▀░░▀▀▀░░░░░░░░░░░░░░░░░░
