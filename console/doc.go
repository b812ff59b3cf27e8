// Package console decodes and rewrites the time window embedded in AWS
// console addresses.
//
// The console encodes its active time range in the address text using
// several mutually incompatible schemes. Classify picks exactly one scheme
// for an address, Parse normalizes that scheme's encoding into an
// epoch-millisecond TimeRange, and Inject rewrites only the time-bearing
// substring of a live address with a new range, preserving every other byte.
//
// All operations are pure functions of their inputs. Classification is rerun
// on every call because it depends only on the current address text.
package console
