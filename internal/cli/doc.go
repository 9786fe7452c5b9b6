// Package cli builds the wryte command line: `wryte write` emits a single
// entry through a logger configured from flags and the WRYTE_*
// environment, `wryte version` prints the build version.
package cli
