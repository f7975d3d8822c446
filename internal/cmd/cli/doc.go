// Package cli contains the Cobra commands of the chlog binary. Every command
// opens the data directory in-process, so only one command may run against a
// directory at a time.
//
// Examples:
//
//	chlog append --table wallet --keychain external --index 5
//	chlog append --table wallet --tx 4a5e1e --height 170
//	chlog replay --table wallet
//	chlog entries --table wallet
//	chlog counter --table wallet
//	chlog tables
package cli
