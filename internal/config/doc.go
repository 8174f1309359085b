// Package config loads the runner's input document: a JSON file naming the
// recognized meta options (§6) plus the ordered test case list.
package config
