// Package filedate derives the target year for a media file. It first tries
// an ordered list of filename date patterns (device-specific tokens before
// generic numeric forms) and falls back to the filesystem creation time,
// applying the New Year cutoff rule in both cases.
package filedate
