//go:build !linux

package stream

var ReadOptimizations []ReadOpt
