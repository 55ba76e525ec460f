// Package platform provides filesystem helpers that differ by operating
// system or that several commands share: locating the enclosing repository
// root and writing files atomically. On Unix, writes go through a temp file
// and rename; on Windows they fall back to a plain write.
package platform
