//go:build !tinygo

package core

// halt parks the calling goroutine for good. There is no CPU to stop on
// regular Go; simulations install their own halt with SetHaltFunc.
func halt() {
	select {}
}
